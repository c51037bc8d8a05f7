package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_submissions_total",
			Help: "Form submissions by outcome",
		},
		[]string{"result"}, // accepted|rejected|error
	)

	MessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_messages_total",
			Help: "Outbound messages by kind and delivery result",
		},
		[]string{"kind", "result"}, // code|promo , sent|failed
	)

	CampaignJobsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_campaign_jobs_total",
			Help: "Scheduled campaign jobs by lifecycle outcome",
		},
		[]string{"outcome"}, // scheduled|fired|dropped
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		SubmissionsTotal,
		MessagesTotal,
		CampaignJobsTotal,
	)
}
