package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lucaruboni/restaurant-advisor/internal/model"
	"github.com/lucaruboni/restaurant-advisor/internal/util"
)

// SubmissionsRepository is the record store contract the services consume:
// equality-filter queries, inserts and single-field updates, all scoped to a
// tenant. The store does not enforce phone uniqueness; the submission service
// checks it best-effort before inserting.
type SubmissionsRepository interface {
	QueryByField(ctx context.Context, tenantID, field string, value any) ([]model.Submission, error)
	Insert(ctx context.Context, tenantID string, s model.Submission) (string, error)
	UpdateField(ctx context.Context, tenantID, recordID, field string, value any) error
}

// Fields accepted in WHERE clauses and SET clauses. The field name is
// interpolated into SQL, so anything outside these maps is rejected.
var (
	queryableFields = map[string]bool{
		"phone":     true,
		"code":      true,
		"email":     true,
		"validated": true,
	}
	updatableFields = map[string]bool{
		"validated": true,
	}
)

type SubmissionsRepositoryImpl struct {
	db *sqlx.DB
}

func NewSubmissionsRepository(db *sqlx.DB) *SubmissionsRepositoryImpl {
	return &SubmissionsRepositoryImpl{db: db}
}

var _ SubmissionsRepository = (*SubmissionsRepositoryImpl)(nil)

// QueryByField returns every submission under the tenant where field equals
// value, oldest first.
func (r *SubmissionsRepositoryImpl) QueryByField(ctx context.Context, tenantID, field string, value any) ([]model.Submission, error) {
	if !queryableFields[field] {
		return nil, fmt.Errorf("field %q is not queryable", field)
	}

	q := fmt.Sprintf(`
		SELECT id, tenant_id, name, email, phone, country, code, validated, created_at
		  FROM submissions
		 WHERE tenant_id = ? AND %s = ?
		 ORDER BY created_at ASC
	`, field)

	var out []model.Submission
	if err := r.db.SelectContext(ctx, &out, q, tenantID, value); err != nil {
		return nil, err
	}
	return out, nil
}

// Insert stores a new submission row and returns its generated record id.
func (r *SubmissionsRepositoryImpl) Insert(ctx context.Context, tenantID string, s model.Submission) (string, error) {
	id := util.NewID()

	const q = `
		INSERT INTO submissions
		    (id, tenant_id, name, email, phone, country, code, validated, created_at)
		VALUES
		    (?,  ?,         ?,    ?,     ?,     ?,       ?,    ?,         ?)
	`
	_, err := r.db.ExecContext(ctx, q,
		id, tenantID, s.Name, s.Email, s.Phone, s.Country, s.Code, s.Validated, s.CreatedAt,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateField sets a single column on one record. A lone UPDATE statement is
// atomic, which is all the validated-flag flip needs.
func (r *SubmissionsRepositoryImpl) UpdateField(ctx context.Context, tenantID, recordID, field string, value any) error {
	if !updatableFields[field] {
		return fmt.Errorf("field %q is not updatable", field)
	}

	q := fmt.Sprintf(`UPDATE submissions SET %s = ? WHERE tenant_id = ? AND id = ?`, field)

	res, err := r.db.ExecContext(ctx, q, value, tenantID, recordID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("submission %s not found under tenant %s", recordID, tenantID)
	}
	return nil
}
