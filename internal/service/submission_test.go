package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/lucaruboni/restaurant-advisor/internal/model"
	"github.com/stretchr/testify/require"
)

func validRequest() SubmitRequest {
	return SubmitRequest{
		RestaurantID:  "trattoria-roma",
		Name:          "Ana",
		Email:         "ana@example.com",
		Phone:         "600111222",
		Country:       "+34",
		PrivacyPolicy: true,
	}
}

func newSubmission(repo *fakeRepo, gw *fakeGateway, camp *fakeCampaign) *Submission {
	return NewSubmission(newFakeDirectory(), repo, gw, camp, time.Minute)
}

func TestSubmitSuccessCreatesRecordAndSchedulesCampaign(t *testing.T) {
	repo := newFakeRepo()
	gw := &fakeGateway{}
	camp := &fakeCampaign{}
	svc := newSubmission(repo, gw, camp)

	before := time.Now().UTC()
	tenantID, err := svc.Submit(context.Background(), validRequest())
	require.NoError(t, err)
	require.Equal(t, "trattoria-roma", tenantID)

	rows := repo.records["trattoria-roma"]
	require.Len(t, rows, 1)
	rec := rows[0]
	require.Equal(t, "Ana", rec.Name)
	require.EqualValues(t, 600111222, rec.Phone)
	require.False(t, rec.Validated)
	require.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{6}$`), rec.Code)
	require.False(t, rec.CreatedAt.Before(before))
	require.Equal(t, time.UTC, rec.CreatedAt.Location())

	// immediate verification message carries name and code
	require.Len(t, gw.sent, 1)
	require.Equal(t, "+34600111222", gw.sent[0].To)
	require.Contains(t, gw.sent[0].Body, "Ana")
	require.Contains(t, gw.sent[0].Body, rec.Code)

	// campaign scheduled one minute out
	require.Len(t, camp.calls, 1)
	call := camp.calls[0]
	require.Equal(t, "trattoria-roma", call.TenantID)
	require.Equal(t, "+34600111222", call.Recipient)
	require.Equal(t, "Ana", call.DisplayName)
	require.WithinDuration(t, before.Add(time.Minute), call.FirstFireAt, 2*time.Second)
}

func TestSubmitWithoutConsentHasNoSideEffects(t *testing.T) {
	repo := newFakeRepo()
	gw := &fakeGateway{}
	camp := &fakeCampaign{}
	svc := newSubmission(repo, gw, camp)

	req := validRequest()
	req.PrivacyPolicy = false

	_, err := svc.Submit(context.Background(), req)

	var ferrs model.FieldErrors
	require.ErrorAs(t, err, &ferrs)
	require.Contains(t, ferrs, "privacyPolicy")

	require.Empty(t, repo.records["trattoria-roma"])
	require.Empty(t, gw.sent)
	require.Empty(t, camp.calls)
}

func TestSubmitCollectsAllFieldErrors(t *testing.T) {
	svc := newSubmission(newFakeRepo(), &fakeGateway{}, &fakeCampaign{})

	req := SubmitRequest{
		RestaurantID:  "no-such-place",
		Name:          "Ana",
		Email:         "ana@example.com",
		Phone:         "60-011",
		Country:       "+1",
		PrivacyPolicy: false,
	}

	_, err := svc.Submit(context.Background(), req)

	var ferrs model.FieldErrors
	require.ErrorAs(t, err, &ferrs)
	require.Contains(t, ferrs, "restaurant_id")
	require.Contains(t, ferrs, "privacyPolicy")
	require.Contains(t, ferrs, "phone")
	require.Contains(t, ferrs, "country")
}

func TestSubmitRejectsSignedPhone(t *testing.T) {
	svc := newSubmission(newFakeRepo(), &fakeGateway{}, &fakeCampaign{})

	req := validRequest()
	req.Phone = "+34600111222"

	_, err := svc.Submit(context.Background(), req)

	var ferrs model.FieldErrors
	require.ErrorAs(t, err, &ferrs)
	require.Equal(t, "Phone number must contain only digits.", ferrs["phone"])
}

func TestSubmitDuplicatePhoneRejected(t *testing.T) {
	repo := newFakeRepo()
	gw := &fakeGateway{}
	camp := &fakeCampaign{}
	svc := newSubmission(repo, gw, camp)

	_, err := svc.Submit(context.Background(), validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.Name = "Second Ana"
	req.Email = "other@example.com"

	_, err = svc.Submit(context.Background(), req)

	var ferrs model.FieldErrors
	require.ErrorAs(t, err, &ferrs)
	require.Equal(t, "This phone number has already been used.", ferrs["phone"])

	require.Len(t, repo.records["trattoria-roma"], 1, "no second record")
	require.Len(t, gw.sent, 1)
	require.Len(t, camp.calls, 1)
}

func TestSubmitSamePhoneDifferentTenantAllowed(t *testing.T) {
	repo := newFakeRepo()
	svc := newSubmission(repo, &fakeGateway{}, &fakeCampaign{})

	_, err := svc.Submit(context.Background(), validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.RestaurantID = "casa-pepe"

	_, err = svc.Submit(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, repo.records["trattoria-roma"], 1)
	require.Len(t, repo.records["casa-pepe"], 1)
}

func TestSubmitGatewayFailureDoesNotFailSubmission(t *testing.T) {
	repo := newFakeRepo()
	gw := &fakeGateway{err: errors.New("provider down")}
	camp := &fakeCampaign{}
	svc := newSubmission(repo, gw, camp)

	tenantID, err := svc.Submit(context.Background(), validRequest())
	require.NoError(t, err)
	require.Equal(t, "trattoria-roma", tenantID)

	// record stays stored and the campaign still runs
	require.Len(t, repo.records["trattoria-roma"], 1)
	require.Len(t, camp.calls, 1)
}

func TestSubmitStoreFailureIsAnError(t *testing.T) {
	repo := newFakeRepo()
	repo.insErr = errors.New("db gone")
	camp := &fakeCampaign{}
	svc := newSubmission(repo, &fakeGateway{}, camp)

	_, err := svc.Submit(context.Background(), validRequest())
	require.Error(t, err)

	var ferrs model.FieldErrors
	require.False(t, errors.As(err, &ferrs), "store failures are not field errors")
	require.Empty(t, camp.calls)
}
