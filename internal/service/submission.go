package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/lucaruboni/restaurant-advisor/internal/catalog"
	"github.com/lucaruboni/restaurant-advisor/internal/gateway"
	"github.com/lucaruboni/restaurant-advisor/internal/metrics"
	"github.com/lucaruboni/restaurant-advisor/internal/model"
	"github.com/lucaruboni/restaurant-advisor/internal/repository"
	"github.com/lucaruboni/restaurant-advisor/internal/util"
	"go.uber.org/zap"
)

const verificationBodyFormat = "Hi %s, 🚀 Thank you for your feedback! Your unique code is: %s. Please validate it to receive your offer."

// Directory is the slice of the catalog the services need.
type Directory interface {
	HasRestaurant(id string) bool
	Country(code string) (catalog.Country, bool)
}

// CampaignScheduler enqueues the promotional sequence for one submission.
type CampaignScheduler interface {
	Schedule(tenantID, recipient, displayName string, firstFireAt time.Time) []string
}

// SubmitRequest carries the feedback form fields.
type SubmitRequest struct {
	RestaurantID  string `form:"restaurant_id" json:"restaurant_id"`
	Name          string `form:"name" json:"name"`
	Email         string `form:"email" json:"email"`
	Phone         string `form:"phone" json:"phone"`
	Country       string `form:"country" json:"country"`
	PrivacyPolicy bool   `form:"privacyPolicy" json:"privacyPolicy"`
}

// Submission validates form submissions, stores accepted records, sends the
// verification code and schedules the promotional campaign.
type Submission struct {
	dir        Directory
	repo       repository.SubmissionsRepository
	gw         gateway.Sender
	campaign   CampaignScheduler
	firstDelay time.Duration
}

func NewSubmission(dir Directory, repo repository.SubmissionsRepository, gw gateway.Sender, campaign CampaignScheduler, firstDelay time.Duration) *Submission {
	if firstDelay <= 0 {
		firstDelay = time.Minute
	}
	return &Submission{
		dir:        dir,
		repo:       repo,
		gw:         gw,
		campaign:   campaign,
		firstDelay: firstDelay,
	}
}

// Submit validates the request, collecting every field violation before
// reporting. On success it stores the record, sends the verification code
// best-effort and schedules the campaign, returning the tenant id for the
// thank-you redirect. A model.FieldErrors error means the caller did something
// wrong; any other error is a store failure.
func (s *Submission) Submit(ctx context.Context, req SubmitRequest) (string, error) {
	errs := model.FieldErrors{}

	if !s.dir.HasRestaurant(req.RestaurantID) {
		errs["restaurant_id"] = "Restaurant not found"
	}
	if !req.PrivacyPolicy {
		errs["privacyPolicy"] = "You must agree to the privacy policy and cookies."
	}

	phone, phoneOK := parseDigits(req.Phone)
	if !phoneOK {
		errs["phone"] = "Phone number must contain only digits."
	}

	country, countryOK := s.dir.Country(req.Country)
	if !countryOK {
		errs["country"] = "Unknown country."
	}

	// Best-effort dedup: a concurrent submission may slip past this check,
	// the store does not enforce uniqueness. The duplicate message wins over
	// the digits error on the phone field.
	if phoneOK {
		existing, err := s.repo.QueryByField(ctx, req.RestaurantID, "phone", phone)
		if err != nil {
			metrics.SubmissionsTotal.WithLabelValues("error").Inc()
			return "", fmt.Errorf("query existing submissions: %w", err)
		}
		if len(existing) > 0 {
			errs["phone"] = "This phone number has already been used."
		}
	}

	if len(errs) > 0 {
		metrics.SubmissionsTotal.WithLabelValues("rejected").Inc()
		return "", errs
	}

	code := util.GenerateCode()
	now := time.Now().UTC()

	rec := model.Submission{
		TenantID:  req.RestaurantID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     phone,
		Country:   req.Country,
		Code:      code,
		Validated: false,
		CreatedAt: now,
	}

	if _, err := s.repo.Insert(ctx, req.RestaurantID, rec); err != nil {
		metrics.SubmissionsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("store submission: %w", err)
	}

	// The record is durable from here on: the code message is best-effort and
	// a delivery failure must not fail the submission.
	recipient := country.Code + req.Phone
	if err := s.gw.Send(ctx, recipient, fmt.Sprintf(verificationBodyFormat, req.Name, code)); err != nil {
		metrics.MessagesTotal.WithLabelValues("code", "failed").Inc()
		zap.L().Warn("failed to send verification code",
			zap.String("tenant_id", req.RestaurantID),
			zap.String("recipient", recipient),
			zap.Error(err),
		)
	} else {
		metrics.MessagesTotal.WithLabelValues("code", "sent").Inc()
	}

	s.campaign.Schedule(req.RestaurantID, recipient, req.Name, now.Add(s.firstDelay))

	metrics.SubmissionsTotal.WithLabelValues("accepted").Inc()
	return req.RestaurantID, nil
}

// parseDigits accepts digits-only strings; strconv alone would let a sign
// through.
func parseDigits(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
