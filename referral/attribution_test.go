package referral

import (
	"testing"

	"github.com/pawtraits-dev/pawtraits-server/models"
)

func TestResolveAttributionPartnerCode(t *testing.T) {
	store := newFakeStore()
	partner := store.addPartner(partnerWithCode("ABC123"))

	attr, err := ResolveAttribution(store, "ABC123")
	if err != nil {
		t.Fatalf("ResolveAttribution: %v", err)
	}
	if attr == nil {
		t.Fatal("expected an attribution")
	}
	if attr.ReferralType != models.ReferralTypePartner {
		t.Fatalf("referral type = %q, want PARTNER", attr.ReferralType)
	}
	if attr.ReferrerID != partner.ID {
		t.Fatalf("referrer id = %d, want the partner's own primary key %d", attr.ReferrerID, partner.ID)
	}
}

func TestResolveAttributionCustomerCode(t *testing.T) {
	store := newFakeStore()
	referrer := store.addUser(userWithPersonalCode("PAWXYZ"))

	attr, err := ResolveAttribution(store, "PAWXYZ")
	if err != nil {
		t.Fatalf("ResolveAttribution: %v", err)
	}
	if attr == nil {
		t.Fatal("expected an attribution")
	}
	if attr.ReferralType != models.ReferralTypeCustomer {
		t.Fatalf("referral type = %q, want CUSTOMER", attr.ReferralType)
	}
	if attr.ReferrerID != referrer.ID {
		t.Fatalf("referrer id = %d, want the referring customer's own primary key %d", attr.ReferrerID, referrer.ID)
	}
}

func TestResolveAttributionPreRegistrationCode(t *testing.T) {
	store := newFakeStore()
	partner := store.addPartner(partnerWithCode("VET001"))
	preReg := store.addPreReg(models.PreRegistrationCode{Code: "PRE001", PartnerID: &partner.ID})

	attr, err := ResolveAttribution(store, "PRE001")
	if err != nil {
		t.Fatalf("ResolveAttribution: %v", err)
	}
	if attr == nil {
		t.Fatal("expected an attribution")
	}
	if attr.ReferralType != models.ReferralTypePartner {
		t.Fatalf("referral type = %q, want PARTNER", attr.ReferralType)
	}
	if attr.ReferrerID != partner.ID {
		t.Fatalf("referrer id = %d, want partner id %d", attr.ReferrerID, partner.ID)
	}
	if attr.PreRegistrationID == nil || *attr.PreRegistrationID != preReg.ID {
		t.Fatal("expected the pre-registration id to be carried for claiming")
	}
}

func TestResolveAttributionDegradesSilently(t *testing.T) {
	store := newFakeStore()

	unapproved := partnerWithCode("NOPE01")
	unapproved.Approved = false
	store.addPartner(unapproved)

	inactive := partnerWithCode("NOPE02")
	inactive.Active = false
	store.addPartner(inactive)

	store.addPreReg(preRegWithCode("NOPE03")) // no partner assigned

	tests := []struct {
		name string
		code string
	}{
		{"empty code", ""},
		{"unknown code", "DOESNOTEXIST"},
		{"unapproved partner", "NOPE01"},
		{"inactive partner", "NOPE02"},
		{"unassigned pre-registration code", "NOPE03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr, err := ResolveAttribution(store, tt.code)
			if err != nil {
				t.Fatalf("ResolveAttribution must not fail the signup: %v", err)
			}
			if attr != nil {
				t.Fatalf("expected no attribution, got %+v", attr)
			}
		})
	}
}

func TestResolveAttributionPartnerNamespaceWins(t *testing.T) {
	store := newFakeStore()
	partner := store.addPartner(partnerWithCode("SHARED"))
	store.addUser(userWithPersonalCode("SHARED"))

	attr, err := ResolveAttribution(store, "SHARED")
	if err != nil {
		t.Fatalf("ResolveAttribution: %v", err)
	}
	if attr == nil || attr.ReferralType != models.ReferralTypePartner || attr.ReferrerID != partner.ID {
		t.Fatalf("partner namespace must be scanned first, got %+v", attr)
	}
}
