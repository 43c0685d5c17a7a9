package referral

import (
	"github.com/pawtraits-dev/pawtraits-server/models"
)

// Store is the persistence surface the referral core needs. Handlers use
// the gorm-backed implementation; tests use an in-memory fake.
type Store interface {
	// CodeInUse reports whether code exists in any of the partner,
	// pre-registration, or customer personal-code namespaces.
	CodeInUse(code string) (bool, error)

	// Lookups return (nil, nil) when no row matches.
	PartnerByCode(code string) (*models.Partner, error)
	PartnerByID(id uint) (*models.Partner, error)
	PreRegistrationByCode(code string) (*models.PreRegistrationCode, error)
	UserByPersonalCode(code string) (*models.User, error)
	UserByID(id uint) (*models.User, error)

	CreateReferral(r *models.Referral) error
	ReferralByCode(code string) (*models.Referral, error)
	ReferralByReferredUser(userID uint) (*models.Referral, error)
	UpdateReferralStatus(id uint, status string) error
	SetReferredUser(id uint, userID uint) error
	// IncrementScanCount must be atomic at the database
	// (scan_count = scan_count + 1), never read-modify-write.
	IncrementScanCount(id uint) error

	CommissionByOrder(orderID uint) (*models.Commission, error)
	CreateCommission(c *models.Commission) error
	// PaidOrderCountBefore counts the user's paid orders excluding orderID.
	PaidOrderCountBefore(userID, orderID uint) (int64, error)
}
