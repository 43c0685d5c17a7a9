package referral

import (
	"errors"

	"gorm.io/gorm"

	"github.com/pawtraits-dev/pawtraits-server/models"
)

// GormStore backs the referral core with the application database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CodeInUse(code string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Partner{}).Where("referral_code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := s.db.Model(&models.PreRegistrationCode{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := s.db.Model(&models.User{}).Where("personal_referral_code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) PartnerByCode(code string) (*models.Partner, error) {
	var partner models.Partner
	err := s.db.Where("referral_code = ?", code).First(&partner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

func (s *GormStore) PartnerByID(id uint) (*models.Partner, error) {
	var partner models.Partner
	err := s.db.First(&partner, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

func (s *GormStore) PreRegistrationByCode(code string) (*models.PreRegistrationCode, error) {
	var preReg models.PreRegistrationCode
	err := s.db.Where("code = ?", code).First(&preReg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &preReg, nil
}

func (s *GormStore) UserByPersonalCode(code string) (*models.User, error) {
	var user models.User
	err := s.db.Where("personal_referral_code = ?", code).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) UserByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) CreateReferral(r *models.Referral) error {
	return s.db.Create(r).Error
}

func (s *GormStore) ReferralByCode(code string) (*models.Referral, error) {
	var rec models.Referral
	err := s.db.Where("code = ?", code).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *GormStore) ReferralByReferredUser(userID uint) (*models.Referral, error) {
	var rec models.Referral
	err := s.db.Where("referred_user_id = ?", userID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *GormStore) UpdateReferralStatus(id uint, status string) error {
	return s.db.Model(&models.Referral{}).Where("id = ?", id).
		Update("status", status).Error
}

func (s *GormStore) SetReferredUser(id uint, userID uint) error {
	return s.db.Model(&models.Referral{}).Where("id = ?", id).
		Update("referred_user_id", userID).Error
}

func (s *GormStore) IncrementScanCount(id uint) error {
	return s.db.Model(&models.Referral{}).Where("id = ?", id).
		UpdateColumn("scan_count", gorm.Expr("scan_count + ?", 1)).Error
}

func (s *GormStore) CommissionByOrder(orderID uint) (*models.Commission, error) {
	var commission models.Commission
	err := s.db.Where("order_id = ?", orderID).First(&commission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &commission, nil
}

func (s *GormStore) CreateCommission(c *models.Commission) error {
	return s.db.Create(c).Error
}

func (s *GormStore) PaidOrderCountBefore(userID, orderID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Order{}).
		Where("user_id = ? AND id <> ? AND status IN ?", userID, orderID,
			[]string{models.OrderStatusPaid, models.OrderStatusSubmitted}).
		Count(&count).Error
	return count, err
}
