package referral

import (
	"github.com/shopspring/decimal"

	"github.com/pawtraits-dev/pawtraits-server/models"
)

var (
	// DefaultPartnerRate applies when a partner has no explicit rate.
	DefaultPartnerRate = decimal.RequireFromString("10.00")

	// CustomerCreditRate is the flat rate credited to a customer for a
	// referred customer's orders.
	CustomerCreditRate = decimal.RequireFromString("5.00")
)

var oneHundred = decimal.NewFromInt(100)

// Amount computes a commission in minor currency units:
// round(subtotal * rate / 100), half away from zero.
func Amount(subtotalPence int64, ratePercent decimal.Decimal) int64 {
	return decimal.NewFromInt(subtotalPence).
		Mul(ratePercent).
		Div(oneHundred).
		Round(0).
		IntPart()
}

// PartnerRate selects a partner's rate for an order: the initial rate for
// the referred account's first paid order, the lifetime rate afterwards,
// with DefaultPartnerRate as the fallback for either.
func PartnerRate(p *models.Partner, firstOrder bool) decimal.Decimal {
	if firstOrder {
		if p.InitialCommissionRate != nil {
			return *p.InitialCommissionRate
		}
		return DefaultPartnerRate
	}
	if p.LifetimeCommissionRate != nil {
		return *p.LifetimeCommissionRate
	}
	return DefaultPartnerRate
}

// RecordCommission creates the commission record for a paid order, at most
// once per order. It returns (nil, nil) when the order carries no
// attributable referrer, and the existing record when one was already
// written (a retried webhook is a successful no-op). It never returns an
// error for a merely unresolvable referrer: commission bookkeeping must
// not block order fulfillment.
func RecordCommission(store Store, order *models.Order) (*models.Commission, error) {
	existing, err := store.CommissionByOrder(order.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	user, err := store.UserByID(order.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.ReferrerID == nil || user.ReferralType == nil {
		return nil, nil
	}

	priorPaid, err := store.PaidOrderCountBefore(user.ID, order.ID)
	if err != nil {
		return nil, err
	}
	firstOrder := priorPaid == 0

	var rate decimal.Decimal
	switch *user.ReferralType {
	case models.ReferralTypePartner:
		partner, err := store.PartnerByID(*user.ReferrerID)
		if err != nil {
			return nil, err
		}
		if partner == nil || !partner.Active {
			return nil, nil
		}
		rate = PartnerRate(partner, firstOrder)
	case models.ReferralTypeCustomer:
		rate = CustomerCreditRate
	default:
		return nil, nil
	}

	commission := &models.Commission{
		OrderID:       order.ID,
		RecipientID:   *user.ReferrerID,
		RecipientType: *user.ReferralType,
		RatePercent:   rate,
		AmountPence:   Amount(order.SubtotalPence, rate),
		Initial:       firstOrder,
	}
	if err := store.CreateCommission(commission); err != nil {
		// A concurrent webhook delivery may have won the unique-index
		// race on order_id; the surviving record is the answer.
		if dup, lookupErr := store.CommissionByOrder(order.ID); lookupErr == nil && dup != nil {
			return dup, nil
		}
		return nil, err
	}
	return commission, nil
}
