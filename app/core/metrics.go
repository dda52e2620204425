package core

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretacare/aretacare/pkg/metrics"
)

type Metrics struct {
	apiResponseTime    *prometheus.HistogramVec
	apiErrorCounter    *prometheus.CounterVec
	classifierTime     *prometheus.HistogramVec
	classifierError    *prometheus.CounterVec
	classifierTokens   *prometheus.HistogramVec
	journalContextTime *prometheus.HistogramVec
}

func NewMetrics(ns, system string) *Metrics {
	metrics.SetupMetricsManager(ns, system, prometheus.DefaultRegisterer.(*prometheus.Registry))

	m := &Metrics{
		apiResponseTime:    metrics.NewHistogramVec("api_response_time", []string{"api"}),
		apiErrorCounter:    metrics.NewCounterVec("api_error", []string{"method", "api", "status"}),
		classifierTime:     metrics.NewHistogramVec("classifier_request_time", nil),
		classifierError:    metrics.NewCounterVec("classifier_error", []string{"type"}),
		classifierTokens:   metrics.NewHistogramVec("classifier_prompt_tokens", nil),
		journalContextTime: metrics.NewHistogramVec("journal_context_time", nil),
	}

	return m
}

func (m *Metrics) ApiErrorInc(method, api string, status int) {
	m.apiErrorCounter.WithLabelValues(method, api, strconv.Itoa(status)).Inc()
}

func (m *Metrics) ApiResponseTimer(api string) *prometheus.Timer {
	return prometheus.NewTimer(m.apiResponseTime.WithLabelValues(api))
}

func (m *Metrics) ClassifierTimer() *prometheus.Timer {
	return prometheus.NewTimer(m.classifierTime.WithLabelValues())
}

func (m *Metrics) ClassifierErrorInc(types string) {
	m.classifierError.WithLabelValues(types).Inc()
}

func (m *Metrics) ClassifierPromptTokensObserve(tokens int) {
	m.classifierTokens.WithLabelValues().Observe(float64(tokens))
}

func (m *Metrics) JournalContextTimer() *prometheus.Timer {
	return prometheus.NewTimer(m.journalContextTime.WithLabelValues())
}
