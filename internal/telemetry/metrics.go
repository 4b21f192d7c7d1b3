package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TransferTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transfer_client_transitions_total",
			Help: "Controller state transitions by target state",
		},
		[]string{"state"},
	)

	TransferCommitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transfer_client_commits_total",
			Help: "Commit attempts by result",
		},
		[]string{"result"}, // succeeded, rejected, upstream, session_expired
	)

	TransferCommitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "transfer_client_commit_duration_seconds",
			Help:    "Time spent waiting for the backend to commit a transfer",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecipientValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transfer_client_recipient_validations_total",
			Help: "Recipient validations by result",
		},
		[]string{"result"}, // verified, not_found, inactive, invalid, upstream
	)

	SnapshotRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transfer_client_snapshot_refresh_total",
			Help: "Account snapshot refreshes by result",
		},
		[]string{"result"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "transfer_client_api_request_duration_seconds",
			Help:    "Backend API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "status"},
	)

	SandboxRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bank_sandbox_http_requests_total",
			Help: "Requests served by the sandbox backend",
		},
		[]string{"method", "route", "status"},
	)

	JournalEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transfer_client_journal_events_total",
			Help: "Domain events moved through the activity journal",
		},
		[]string{"stage", "result"}, // stage: enqueue, publish
	)
)
