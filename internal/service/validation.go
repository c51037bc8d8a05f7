package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lucaruboni/restaurant-advisor/internal/repository"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrInvalidCode        = errors.New("invalid code")
	ErrCodeAlreadyUsed    = errors.New("code already used")
)

// Validation flips a submission's validated flag exactly once per record:
// Unvalidated -> Validated on a matching code, nothing else.
type Validation struct {
	dir  Directory
	repo repository.SubmissionsRepository
}

func NewValidation(dir Directory, repo repository.SubmissionsRepository) *Validation {
	return &Validation{dir: dir, repo: repo}
}

// Validate resolves the code under the tenant. Codes are not actively kept
// unique per tenant, so if the store returns several matches the oldest one
// wins.
func (v *Validation) Validate(ctx context.Context, tenantID, code string) error {
	if !v.dir.HasRestaurant(tenantID) {
		return ErrRestaurantNotFound
	}

	matches, err := v.repo.QueryByField(ctx, tenantID, "code", code)
	if err != nil {
		return fmt.Errorf("query submissions by code: %w", err)
	}
	if len(matches) == 0 {
		return ErrInvalidCode
	}

	rec := matches[0]
	if rec.Validated {
		return ErrCodeAlreadyUsed
	}

	if err := v.repo.UpdateField(ctx, tenantID, rec.ID, "validated", true); err != nil {
		return fmt.Errorf("mark submission validated: %w", err)
	}
	return nil
}
