package accounts

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the first admin when no admin with email exists yet.
// It reports whether an account was created.
func SeedAdmin(ctx context.Context, store Store, name, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}

	existing, err := store.FindByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("look up admin: %w", err)
	}
	if existing != nil {
		return false, nil
	}

	if name == "" {
		name = "Administrator"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	acc := newAccount(Admins, &AddRequest{Name: name, Email: email}, string(hash))
	if err := store.Create(ctx, acc); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}
