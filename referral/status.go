package referral

import (
	"time"

	"github.com/pawtraits-dev/pawtraits-server/models"
)

// ExpiryWindow is how long a referral stays live after its code is issued.
const ExpiryWindow = 90 * 24 * time.Hour

// Event is a tracked lifecycle event against a referral record.
type Event string

const (
	EventAccessed Event = "accessed" // first page view or QR scan
	EventAccepted Event = "accepted" // completed signup
	EventApplied  Event = "applied"  // first qualifying paid order
)

var statusRank = map[string]int{
	models.ReferralStatusInvited:  0,
	models.ReferralStatusAccessed: 1,
	models.ReferralStatusAccepted: 2,
	models.ReferralStatusApplied:  3,
}

var eventStatus = map[Event]string{
	EventAccessed: models.ReferralStatusAccessed,
	EventAccepted: models.ReferralStatusAccepted,
	EventApplied:  models.ReferralStatusApplied,
}

// NextStatus computes the status a referral moves to for an event at a
// given time. Transitions are forward-only; a duplicate or out-of-order
// event returns the current status with changed=false. Expiry wins over
// any event and fires from any non-terminal state.
func NextStatus(current string, ev Event, now, expiresAt time.Time) (status string, changed bool) {
	if current == models.ReferralStatusExpired || current == models.ReferralStatusApplied {
		return current, false
	}
	if now.After(expiresAt) {
		return models.ReferralStatusExpired, true
	}
	target, ok := eventStatus[ev]
	if !ok {
		return current, false
	}
	if statusRank[target] <= statusRank[current] {
		return current, false
	}
	return target, true
}

// TrackAccess records a page view or QR scan against a code: the scan
// counter is incremented on every view regardless of state, then the
// accessed transition (or expiry) is applied. Returns ErrReferralNotFound
// for unknown codes and ErrReferralExpired once the record is expired.
func TrackAccess(store Store, code string, now time.Time) (*models.Referral, error) {
	rec, err := store.ReferralByCode(code)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrReferralNotFound
	}

	if err := store.IncrementScanCount(rec.ID); err != nil {
		return nil, err
	}
	rec.ScanCount++

	next, changed := NextStatus(rec.Status, EventAccessed, now, rec.ExpiresAt)
	if changed {
		if err := store.UpdateReferralStatus(rec.ID, next); err != nil {
			return nil, err
		}
		rec.Status = next
	}
	if rec.Status == models.ReferralStatusExpired {
		return rec, ErrReferralExpired
	}
	return rec, nil
}

// TrackAccepted records a completed signup against a code and binds the
// new user to the referral record. Unknown codes return ErrReferralNotFound.
func TrackAccepted(store Store, code string, userID uint, now time.Time) (*models.Referral, error) {
	rec, err := store.ReferralByCode(code)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrReferralNotFound
	}

	if rec.ReferredUserID == nil {
		if err := store.SetReferredUser(rec.ID, userID); err != nil {
			return nil, err
		}
		rec.ReferredUserID = &userID
	}

	next, changed := NextStatus(rec.Status, EventAccepted, now, rec.ExpiresAt)
	if changed {
		if err := store.UpdateReferralStatus(rec.ID, next); err != nil {
			return nil, err
		}
		rec.Status = next
	}
	if rec.Status == models.ReferralStatusExpired {
		return rec, ErrReferralExpired
	}
	return rec, nil
}

// TrackApplied moves the referred user's referral to applied on their
// first qualifying paid order. Missing records are not an error: order
// processing is never blocked by referral bookkeeping.
func TrackApplied(store Store, userID uint, now time.Time) error {
	rec, err := store.ReferralByReferredUser(userID)
	if err != nil {
		return err
	}
	if rec == nil {
		return nil
	}
	next, changed := NextStatus(rec.Status, EventApplied, now, rec.ExpiresAt)
	if !changed {
		return nil
	}
	return store.UpdateReferralStatus(rec.ID, next)
}
