package jwt

import (
	"testing"
	"time"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	SetSecret("test-secret")

	token, err := Sign(time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Verify(token); err != nil {
		t.Errorf("fresh token failed verification: %v", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	SetSecret("test-secret")

	token, err := Sign(-time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Verify(token); err == nil {
		t.Error("expired token must fail verification")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if err := Verify("not.a.token"); err == nil {
		t.Error("garbage token must fail verification")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	SetSecret("secret-one")
	token, err := Sign(time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	SetSecret("secret-two")
	if err := Verify(token); err == nil {
		t.Error("token signed with another secret must fail")
	}
}
