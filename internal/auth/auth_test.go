package auth

import (
	"errors"
	"testing"
)

func TestAuthenticateStaticAccounts(t *testing.T) {
	creds := NewCredentials(DefaultAccounts(), nil)

	name, err := creds.Authenticate("manager", "pass123")
	if err != nil || name != "Manager" {
		t.Fatalf("manager login = %q, %v", name, err)
	}
	name, err = creds.Authenticate("staff", "pass456")
	if err != nil || name != "Staff Member" {
		t.Fatalf("staff login = %q, %v", name, err)
	}
}

func TestAuthenticateGenericFailure(t *testing.T) {
	creds := NewCredentials(DefaultAccounts(), nil)

	// Wrong password and unknown user must be indistinguishable.
	_, errWrongPass := creds.Authenticate("manager", "nope")
	_, errUnknown := creds.Authenticate("ghost", "nope")

	if !errors.Is(errWrongPass, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v", errWrongPass)
	}
	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Fatalf("unknown user: got %v", errUnknown)
	}
	if errWrongPass.Error() != errUnknown.Error() {
		t.Fatal("error messages must not distinguish unknown user from wrong password")
	}
}

func TestAuthenticateOverride(t *testing.T) {
	override := &Account{Username: "ops", Password: "s3cret"}
	creds := NewCredentials(DefaultAccounts(), override)

	// Override succeeds with the submitted username as display name.
	name, err := creds.Authenticate("ops", "s3cret")
	if err != nil || name != "ops" {
		t.Fatalf("override login = %q, %v", name, err)
	}

	// Static accounts still work alongside an override.
	if _, err := creds.Authenticate("staff", "pass456"); err != nil {
		t.Fatalf("static login with override set: %v", err)
	}
}

func TestAuthenticateOverrideShadowsStatic(t *testing.T) {
	override := &Account{Username: "manager", Password: "rotated"}
	creds := NewCredentials(DefaultAccounts(), override)

	// Only the override pair authenticates for the shadowed username.
	if _, err := creds.Authenticate("manager", "pass123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("shadowed static password should fail, got %v", err)
	}
	name, err := creds.Authenticate("manager", "rotated")
	if err != nil || name != "manager" {
		t.Fatalf("override login = %q, %v", name, err)
	}
}
