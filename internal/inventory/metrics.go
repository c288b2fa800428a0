package inventory

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultFound       = "found"
	resultNoMatch     = "no_match"
	resultUnavailable = "unavailable"
	resultBadResponse = "bad_response"
	resultError       = "error"
)

type LookupMetrics struct {
	Results *prometheus.CounterVec
}

func NewLookupMetrics(reg prometheus.Registerer) *LookupMetrics {
	m := &LookupMetrics{
		Results: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_lookups_total",
				Help: "External product lookups by outcome",
			},
			[]string{"result"},
		),
	}
	reg.MustRegister(m.Results)
	return m
}

func (m *LookupMetrics) observe(err error) {
	if m == nil {
		return
	}
	m.Results.WithLabelValues(lookupResult(err)).Inc()
}

func lookupResult(err error) string {
	switch {
	case err == nil:
		return resultFound
	case errors.Is(err, ErrLookupNoMatch):
		return resultNoMatch
	case errors.Is(err, ErrLookupUnavailable):
		return resultUnavailable
	case errors.Is(err, ErrLookupBadResponse):
		return resultBadResponse
	default:
		return resultError
	}
}
