package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SharesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "knowthatperson", Name: "shares_created_total", Help: "Number of share links created."},
	)
	ShareTokenCollisions = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "knowthatperson", Name: "share_token_collisions_total", Help: "Number of share token collisions that forced a regeneration."},
	)
	AnswersSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "knowthatperson", Name: "answers_submitted_total", Help: "Number of answers submitted to share threads."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "knowthatperson", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "knowthatperson", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(SharesCreated)
	reg.MustRegister(ShareTokenCollisions)
	reg.MustRegister(AnswersSubmitted)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
