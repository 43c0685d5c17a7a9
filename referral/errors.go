package referral

import "errors"

var (
	// ErrCodeGenerationExhausted means no unique code was found within the
	// retry bound. Callers must fail the signup rather than reuse a code.
	ErrCodeGenerationExhausted = errors.New("referral code generation exhausted")

	ErrReferralNotFound = errors.New("referral not found")
	ErrReferralExpired  = errors.New("referral expired")
)
