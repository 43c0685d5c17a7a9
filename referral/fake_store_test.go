package referral

import (
	"github.com/pawtraits-dev/pawtraits-server/models"
)

// fakeStore is an in-memory Store for exercising the referral core
// without a database.
type fakeStore struct {
	partners    map[uint]*models.Partner
	preRegs     map[string]*models.PreRegistrationCode
	users       map[uint]*models.User
	referrals   map[uint]*models.Referral
	commissions map[uint]*models.Commission // keyed by order ID
	paidOrders  map[uint]int64              // user ID -> prior paid orders

	// forcedCollisions makes the next N CodeInUse calls report a
	// collision, regardless of the stored codes.
	forcedCollisions int
	codeChecks       int

	nextID uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		partners:    make(map[uint]*models.Partner),
		preRegs:     make(map[string]*models.PreRegistrationCode),
		users:       make(map[uint]*models.User),
		referrals:   make(map[uint]*models.Referral),
		commissions: make(map[uint]*models.Commission),
		paidOrders:  make(map[uint]int64),
	}
}

func (s *fakeStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) addPartner(p models.Partner) *models.Partner {
	p.ID = s.id()
	s.partners[p.ID] = &p
	return &p
}

func (s *fakeStore) addUser(u models.User) *models.User {
	u.ID = s.id()
	s.users[u.ID] = &u
	return &u
}

func (s *fakeStore) addPreReg(p models.PreRegistrationCode) *models.PreRegistrationCode {
	p.ID = s.id()
	s.preRegs[p.Code] = &p
	return &p
}

func (s *fakeStore) CodeInUse(code string) (bool, error) {
	s.codeChecks++
	if s.forcedCollisions > 0 {
		s.forcedCollisions--
		return true, nil
	}
	for _, p := range s.partners {
		if p.ReferralCode == code {
			return true, nil
		}
	}
	if _, ok := s.preRegs[code]; ok {
		return true, nil
	}
	for _, u := range s.users {
		if u.PersonalReferralCode != nil && *u.PersonalReferralCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) PartnerByCode(code string) (*models.Partner, error) {
	for _, p := range s.partners {
		if p.ReferralCode == code {
			return p, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) PartnerByID(id uint) (*models.Partner, error) {
	return s.partners[id], nil
}

func (s *fakeStore) PreRegistrationByCode(code string) (*models.PreRegistrationCode, error) {
	return s.preRegs[code], nil
}

func (s *fakeStore) UserByPersonalCode(code string) (*models.User, error) {
	for _, u := range s.users {
		if u.PersonalReferralCode != nil && *u.PersonalReferralCode == code {
			return u, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) UserByID(id uint) (*models.User, error) {
	return s.users[id], nil
}

func (s *fakeStore) CreateReferral(r *models.Referral) error {
	r.ID = s.id()
	s.referrals[r.ID] = r
	return nil
}

// Referral lookups return copies, like a database read would.
func (s *fakeStore) ReferralByCode(code string) (*models.Referral, error) {
	for _, r := range s.referrals {
		if r.Code == code {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) ReferralByReferredUser(userID uint) (*models.Referral, error) {
	for _, r := range s.referrals {
		if r.ReferredUserID != nil && *r.ReferredUserID == userID {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) UpdateReferralStatus(id uint, status string) error {
	if r, ok := s.referrals[id]; ok {
		r.Status = status
	}
	return nil
}

func (s *fakeStore) SetReferredUser(id uint, userID uint) error {
	if r, ok := s.referrals[id]; ok {
		r.ReferredUserID = &userID
	}
	return nil
}

func (s *fakeStore) IncrementScanCount(id uint) error {
	if r, ok := s.referrals[id]; ok {
		r.ScanCount++
	}
	return nil
}

func (s *fakeStore) CommissionByOrder(orderID uint) (*models.Commission, error) {
	return s.commissions[orderID], nil
}

func (s *fakeStore) CreateCommission(c *models.Commission) error {
	c.ID = s.id()
	s.commissions[c.OrderID] = c
	return nil
}

func (s *fakeStore) PaidOrderCountBefore(userID, orderID uint) (int64, error) {
	return s.paidOrders[userID], nil
}

func partnerWithCode(code string) models.Partner {
	return models.Partner{
		BusinessName: "Test Partner",
		ContactEmail: code + "@example.com",
		ReferralCode: code,
		Approved:     true,
		Active:       true,
	}
}

func preRegWithCode(code string) models.PreRegistrationCode {
	return models.PreRegistrationCode{Code: code}
}

func userWithPersonalCode(code string) models.User {
	return models.User{
		Email:                code + "@example.com",
		PersonalReferralCode: &code,
	}
}
