package referral

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerateCodeShape(t *testing.T) {
	store := newFakeStore()

	code, err := GenerateCode(store, "PAR", 6)
	if err != nil {
		t.Fatalf("GenerateCode: %v", err)
	}
	if len(code) != 9 {
		t.Fatalf("expected 9-character code, got %q (%d)", code, len(code))
	}
	if !strings.HasPrefix(code, "PAR") {
		t.Fatalf("expected PAR prefix, got %q", code)
	}
	for _, r := range code[3:] {
		if !strings.ContainsRune(codeAlphabet, r) {
			t.Fatalf("suffix character %q outside alphabet in code %q", r, code)
		}
	}
}

func TestGenerateCodeDefaults(t *testing.T) {
	store := newFakeStore()

	code, err := GenerateCode(store, "", 0)
	if err != nil {
		t.Fatalf("GenerateCode: %v", err)
	}
	if !strings.HasPrefix(code, DefaultCodePrefix) {
		t.Fatalf("expected default prefix, got %q", code)
	}
	if len(code) != len(DefaultCodePrefix)+DefaultSuffixLength {
		t.Fatalf("unexpected code length: %q", code)
	}
}

func TestGenerateCodeRetriesOnCollision(t *testing.T) {
	store := newFakeStore()
	store.forcedCollisions = 3

	code, err := GenerateCode(store, "PAR", 6)
	if err != nil {
		t.Fatalf("GenerateCode: %v", err)
	}
	if code == "" {
		t.Fatal("expected a code after retries")
	}
	if store.codeChecks != 4 {
		t.Fatalf("expected 4 uniqueness checks (3 collisions + 1 success), got %d", store.codeChecks)
	}
}

func TestGenerateCodeExhaustion(t *testing.T) {
	store := newFakeStore()
	store.forcedCollisions = 100

	_, err := GenerateCode(store, "PAR", 6)
	if !errors.Is(err, ErrCodeGenerationExhausted) {
		t.Fatalf("expected ErrCodeGenerationExhausted, got %v", err)
	}
	if store.codeChecks != 10 {
		t.Fatalf("expected exactly 10 attempts, got %d", store.codeChecks)
	}
}

func TestGenerateCodeUniqueAcrossNamespaces(t *testing.T) {
	store := newFakeStore()
	store.addPartner(partnerWithCode("PAWVET123"))
	store.addPreReg(preRegWithCode("PAWGRM456"))
	personal := "PAWREF789"
	store.addUser(userWithPersonalCode(personal))

	seen := map[string]bool{"PAWVET123": true, "PAWGRM456": true, personal: true}
	for i := 0; i < 50; i++ {
		code, err := GenerateCode(store, "PAW", 6)
		if err != nil {
			t.Fatalf("GenerateCode: %v", err)
		}
		if seen[code] {
			t.Fatalf("issued code %q collides with an existing code", code)
		}
		seen[code] = true
		// Every issued code joins a namespace, so later issuance must
		// steer around it.
		store.addPreReg(preRegWithCode(code))
	}
}

func TestCodePrefix(t *testing.T) {
	tests := []struct {
		name     string
		business string
		want     string
	}{
		{"plain name", "Paws & Claws Grooming", "PAW"},
		{"lowercase", "barks", "BAR"},
		{"punctuation stripped", "& Co!", "PAW"},
		{"empty falls back", "", "PAW"},
		{"digits kept", "4 Paws", "4PA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodePrefix(tt.business); got != tt.want {
				t.Fatalf("CodePrefix(%q) = %q, want %q", tt.business, got, tt.want)
			}
		})
	}
}
