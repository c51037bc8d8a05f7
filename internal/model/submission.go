package model

import (
	"sort"
	"strings"
	"time"
)

// Submission is the DB entity persisted in the submissions table, one row per
// feedback form submission. TenantID partitions rows per restaurant.
type Submission struct {
	ID        string    `db:"id" json:"id"`
	TenantID  string    `db:"tenant_id" json:"-"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     int64     `db:"phone" json:"phone"`
	Country   string    `db:"country" json:"country"`
	Code      string    `db:"code" json:"code"`
	Validated bool      `db:"validated" json:"validated"`
	CreatedAt time.Time `db:"created_at" json:"timestamp"`
}

// FieldErrors maps form field names to user-facing messages. All validation
// violations for a request are collected here before anything else happens.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return strings.Join(parts, "; ")
}
