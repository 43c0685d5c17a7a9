package referral

import (
	"math/rand"
	"strings"
	"unicode"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// DefaultCodePrefix is used when no business name is available.
	DefaultCodePrefix = "PAW"

	// DefaultSuffixLength is the random portion appended to the prefix.
	DefaultSuffixLength = 6

	maxCodeAttempts = 10
)

// CodePrefix derives a short upper-case prefix from a business name, e.g.
// "Paws & Claws Grooming" -> "PAW". Falls back to DefaultCodePrefix.
func CodePrefix(businessName string) string {
	var b strings.Builder
	for _, r := range businessName {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
			if b.Len() >= 3 {
				break
			}
		}
	}
	if b.Len() < 3 {
		return DefaultCodePrefix
	}
	return b.String()
}

// GenerateCode produces a referral code of the form prefix + random
// alphanumeric suffix, unique across the partner, pre-registration, and
// customer personal-code namespaces at the moment of issuance. It retries
// up to maxCodeAttempts times and returns ErrCodeGenerationExhausted if
// every candidate collides.
func GenerateCode(store Store, prefix string, suffixLength int) (string, error) {
	if prefix == "" {
		prefix = DefaultCodePrefix
	}
	if suffixLength <= 0 {
		suffixLength = DefaultSuffixLength
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := prefix + randomSuffix(suffixLength)
		inUse, err := store.CodeInUse(code)
		if err != nil {
			return "", err
		}
		if !inUse {
			return code, nil
		}
	}
	return "", ErrCodeGenerationExhausted
}

func randomSuffix(length int) string {
	suffix := make([]byte, length)
	for i := range suffix {
		suffix[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(suffix)
}
