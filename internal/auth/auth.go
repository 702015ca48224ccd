// Package auth verifies dashboard credentials and issues session tokens.
//
// The account set is fixed at startup: a static table plus an optional
// override pair from the environment. Passwords are compared exactly;
// this is an internal low-stakes dashboard and hardening the comparison
// is an explicit non-goal.
package auth

import (
	"errors"
)

// Account is a single dashboard login.
type Account struct {
	Username    string
	Password    string
	DisplayName string
}

// ErrInvalidCredentials is returned for unknown users and wrong
// passwords alike, so callers cannot enumerate usernames.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials holds the account set, immutable after construction.
// The override, when present, is first in lookup order and shadows any
// static account with the same username.
type Credentials struct {
	override *Account
	accounts map[string]Account
}

// DefaultAccounts returns the built-in two-role account table.
func DefaultAccounts() []Account {
	return []Account{
		{Username: "manager", Password: "pass123", DisplayName: "Manager"},
		{Username: "staff", Password: "pass456", DisplayName: "Staff Member"},
	}
}

// NewCredentials builds the lookup set. Pass override as nil when no
// external pair is configured.
func NewCredentials(accounts []Account, override *Account) *Credentials {
	byName := make(map[string]Account, len(accounts))
	for _, a := range accounts {
		byName[a.Username] = a
	}
	return &Credentials{override: override, accounts: byName}
}

// Authenticate checks the submitted pair and returns the display name
// on success. The override account authenticates with the submitted
// username as its display name.
func (c *Credentials) Authenticate(username, password string) (string, error) {
	if c.override != nil && username == c.override.Username {
		if password != c.override.Password {
			return "", ErrInvalidCredentials
		}
		return username, nil
	}

	a, ok := c.accounts[username]
	if !ok || a.Password != password {
		return "", ErrInvalidCredentials
	}
	return a.DisplayName, nil
}
