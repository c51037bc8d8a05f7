package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lucaruboni/restaurant-advisor/internal/catalog"
	"github.com/lucaruboni/restaurant-advisor/internal/model"
)

type fakeDirectory struct {
	restaurants map[string]bool
	countries   map[string]catalog.Country
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		restaurants: map[string]bool{"trattoria-roma": true, "casa-pepe": true},
		countries: map[string]catalog.Country{
			"+34": {Code: "+34", Name: "Spain"},
			"+39": {Code: "+39", Name: "Italy"},
		},
	}
}

func (d *fakeDirectory) HasRestaurant(id string) bool { return d.restaurants[id] }

func (d *fakeDirectory) Country(code string) (catalog.Country, bool) {
	c, ok := d.countries[code]
	return c, ok
}

type fakeRepo struct {
	records  map[string][]model.Submission // tenant -> rows
	nextID   int
	queryErr error
	insErr   error
	updated  []string // record ids marked validated
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: map[string][]model.Submission{}}
}

func (r *fakeRepo) QueryByField(_ context.Context, tenantID, field string, value any) ([]model.Submission, error) {
	if r.queryErr != nil {
		return nil, r.queryErr
	}

	var out []model.Submission
	for _, rec := range r.records[tenantID] {
		switch field {
		case "phone":
			if rec.Phone == value.(int64) {
				out = append(out, rec)
			}
		case "code":
			if rec.Code == value.(string) {
				out = append(out, rec)
			}
		default:
			return nil, fmt.Errorf("field %q is not queryable", field)
		}
	}
	return out, nil
}

func (r *fakeRepo) Insert(_ context.Context, tenantID string, s model.Submission) (string, error) {
	if r.insErr != nil {
		return "", r.insErr
	}

	r.nextID++
	s.ID = fmt.Sprintf("rec-%d", r.nextID)
	s.TenantID = tenantID
	r.records[tenantID] = append(r.records[tenantID], s)
	return s.ID, nil
}

func (r *fakeRepo) UpdateField(_ context.Context, tenantID, recordID, field string, value any) error {
	if field != "validated" {
		return fmt.Errorf("field %q is not updatable", field)
	}
	for i, rec := range r.records[tenantID] {
		if rec.ID == recordID {
			r.records[tenantID][i].Validated = value.(bool)
			r.updated = append(r.updated, recordID)
			return nil
		}
	}
	return errors.New("record not found")
}

type fakeGateway struct {
	sent []struct{ To, Body string }
	err  error
}

func (g *fakeGateway) Send(_ context.Context, to, body string) error {
	if g.err != nil {
		return g.err
	}
	g.sent = append(g.sent, struct{ To, Body string }{to, body})
	return nil
}

type campaignCall struct {
	TenantID    string
	Recipient   string
	DisplayName string
	FirstFireAt time.Time
}

type fakeCampaign struct {
	calls []campaignCall
}

func (c *fakeCampaign) Schedule(tenantID, recipient, displayName string, firstFireAt time.Time) []string {
	c.calls = append(c.calls, campaignCall{tenantID, recipient, displayName, firstFireAt})
	return []string{"job-1", "job-2", "job-3", "job-4", "job-5"}
}
