package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SignupsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scribe_signups_total",
			Help: "Total number of successful signups",
		},
	)

	SigninsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scribe_signins_total",
			Help: "Total number of successful signins",
		},
	)

	SigninFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scribe_signin_failures_total",
			Help: "Total number of rejected signin attempts",
		},
	)

	AccessTokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scribe_access_tokens_issued_total",
			Help: "Total number of access tokens issued",
		},
	)

	JWTValidationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scribe_jwt_validations_total",
			Help: "Total number of JWT validations",
		},
	)

	JWTValidationsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scribe_jwt_validations_failed_total",
			Help: "Total number of failed JWT validations",
		},
	)
)
