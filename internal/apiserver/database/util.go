package database

import (
	"context"
	"errors"
)

// DefaultFeedTypes is the catalogue seeded into an empty feed_types table
var DefaultFeedTypes = []FeedType{
	{Name: "Prestarter", Description: "Feed for chicks 0-7 days", PricePerKg: 45, IsAvailable: true},
	{Name: "Starter", Description: "Feed for chicks 8-21 days", PricePerKg: 42, IsAvailable: true},
	{Name: "Finisher", Description: "Feed for birds 22+ days", PricePerKg: 40, IsAvailable: true},
}

// InitSuperAdmin creates the admin account unless a user with that email
// already exists. It reports whether a user was created.
func InitSuperAdmin(ctx context.Context, db Database, email, passwordHash, fullName string) (bool, error) {
	_, err := db.GetUserByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, err
	}

	admin := &User{
		Email:      email,
		Password:   passwordHash,
		FullName:   fullName,
		Role:       RoleAdmin,
		IsActive:   true,
		IsVerified: true,
	}
	if err := db.CreateUser(ctx, admin); err != nil {
		// another replica seeded it first
		if errors.Is(err, ErrConflict) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// InitFeedTypes seeds DefaultFeedTypes when the catalogue is empty
func InitFeedTypes(ctx context.Context, db Database) error {
	existing, err := db.ListFeedTypes(ctx, false)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	return db.Transaction(ctx, func(ctx context.Context) error {
		for _, ft := range DefaultFeedTypes {
			if err := db.CreateFeedType(ctx, &ft); err != nil && !errors.Is(err, ErrConflict) {
				return err
			}
		}
		return nil
	})
}
