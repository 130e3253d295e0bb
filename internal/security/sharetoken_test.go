package security

import (
	"testing"
	"time"
)

func TestShareTokenRoundTrip(t *testing.T) {
	token, err := MintShareToken("secret", time.Hour)
	if err != nil {
		t.Fatalf("MintShareToken() error = %v", err)
	}

	if err := ValidateShareToken("secret", token); err != nil {
		t.Errorf("ValidateShareToken() error = %v", err)
	}
}

func TestShareTokenRejectsWrongSecret(t *testing.T) {
	token, err := MintShareToken("secret", time.Hour)
	if err != nil {
		t.Fatalf("MintShareToken() error = %v", err)
	}

	if err := ValidateShareToken("other-secret", token); err != ErrInvalidShareToken {
		t.Errorf("ValidateShareToken() error = %v, want ErrInvalidShareToken", err)
	}
}

func TestShareTokenRejectsExpired(t *testing.T) {
	token, err := MintShareToken("secret", -time.Minute)
	if err != nil {
		t.Fatalf("MintShareToken() error = %v", err)
	}

	if err := ValidateShareToken("secret", token); err != ErrInvalidShareToken {
		t.Errorf("ValidateShareToken() error = %v, want ErrInvalidShareToken", err)
	}
}

func TestShareTokenRejectsGarbage(t *testing.T) {
	if err := ValidateShareToken("secret", "not.a.token"); err != ErrInvalidShareToken {
		t.Errorf("ValidateShareToken() error = %v, want ErrInvalidShareToken", err)
	}
}

func TestMintShareTokenRequiresSecret(t *testing.T) {
	if _, err := MintShareToken("", time.Hour); err == nil {
		t.Error("MintShareToken() with empty secret should fail")
	}
}
