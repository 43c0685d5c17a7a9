package referral

import (
	"github.com/pawtraits-dev/pawtraits-server/models"
)

// Attribution names who gets credit for a signup. ReferrerID is always the
// matched entity's own primary key.
type Attribution struct {
	ReferrerID   uint
	ReferralType string
	// PreRegistrationID is set when the match came through a
	// pre-registration code, so the caller can mark it claimed.
	PreRegistrationID *uint
}

// ResolveAttribution looks up an inbound code in the partner namespace,
// then the pre-registration namespace, then the customer personal-code
// namespace; the first match wins. A miss, an unapproved or inactive
// partner, or an unassigned pre-registration code all resolve to
// (nil, nil): a bad code must never block signup.
func ResolveAttribution(store Store, code string) (*Attribution, error) {
	if code == "" {
		return nil, nil
	}

	partner, err := store.PartnerByCode(code)
	if err != nil {
		return nil, err
	}
	if partner != nil {
		if !partner.Approved || !partner.Active {
			return nil, nil
		}
		return &Attribution{ReferrerID: partner.ID, ReferralType: models.ReferralTypePartner}, nil
	}

	preReg, err := store.PreRegistrationByCode(code)
	if err != nil {
		return nil, err
	}
	if preReg != nil {
		if preReg.PartnerID == nil {
			return nil, nil
		}
		partner, err := store.PartnerByID(*preReg.PartnerID)
		if err != nil {
			return nil, err
		}
		if partner == nil || !partner.Approved || !partner.Active {
			return nil, nil
		}
		id := preReg.ID
		return &Attribution{
			ReferrerID:        partner.ID,
			ReferralType:      models.ReferralTypePartner,
			PreRegistrationID: &id,
		}, nil
	}

	referrer, err := store.UserByPersonalCode(code)
	if err != nil {
		return nil, err
	}
	if referrer != nil {
		return &Attribution{ReferrerID: referrer.ID, ReferralType: models.ReferralTypeCustomer}, nil
	}

	return nil, nil
}
