package principal

import (
	"context"
	"errors"

	"github.com/kumar-97/kukkuta-Kendra/internal/apiserver/database"
	"github.com/kumar-97/kukkuta-Kendra/internal/i18n"
)

// FarmerProfiles loads a farmer profile by account
type FarmerProfiles interface {
	GetFarmerByUserID(ctx context.Context, userID uint) (*database.Farmer, error)
}

// MillProfiles loads a mill profile by account
type MillProfiles interface {
	GetMillByUserID(ctx context.Context, userID uint) (*database.Mill, error)
}

// RequireFarmer checks the role and returns the caller's farmer profile
func RequireFarmer(ctx context.Context, p Principal, profiles FarmerProfiles) (*database.Farmer, error) {
	f, ok := p.(*Farmer)
	if !ok {
		return nil, i18n.ErrPermissionDenied
	}
	profile, err := profiles.GetFarmerByUserID(ctx, f.User().ID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, i18n.ErrFarmerProfileMissing
	}
	return profile, err
}

// RequireMill checks the role and returns the caller's mill profile
func RequireMill(ctx context.Context, p Principal, profiles MillProfiles) (*database.Mill, error) {
	m, ok := p.(*Mill)
	if !ok {
		return nil, i18n.ErrPermissionDenied
	}
	profile, err := profiles.GetMillByUserID(ctx, m.User().ID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, i18n.ErrMillProfileMissing
	}
	return profile, err
}

// RequireAdmin checks the role only
func RequireAdmin(p Principal) (*Admin, error) {
	a, ok := p.(*Admin)
	if !ok {
		return nil, i18n.ErrPermissionDenied
	}
	return a, nil
}
