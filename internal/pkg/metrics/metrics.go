// Package metrics defines and registers the custom Prometheus metrics of the
// lunch voting API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry on package init via promauto.
// HTTP request metrics are produced separately by the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lunchvote"

// ── Vote metrics ──────────────────────────────────────────────────────────────

// VotesCastTotal counts accepted votes.
// Label:
//   - outcome: "created" for the day's first vote, "changed" when it was overwritten
var VotesCastTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_cast_total",
		Help:      "Total number of accepted votes, by outcome (created/changed).",
	},
	[]string{"outcome"},
)

// VotesRejectedTotal counts votes refused because the day's cutoff had passed.
var VotesRejectedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_rejected_total",
		Help:      "Total number of votes rejected after the voting cutoff.",
	},
)

// ── User cache metrics ────────────────────────────────────────────────────────

// UserCacheRequestsTotal counts user listing lookups against the cache.
// Label:
//   - result: "hit" or "miss"
var UserCacheRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_cache_requests_total",
		Help:      "Total number of user listing cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Vote event dispatcher metrics ─────────────────────────────────────────────

// VoteEventsPublishedTotal counts vote events handed to the publisher.
// Label:
//   - result: "ok" or "error"
var VoteEventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vote_events_published_total",
		Help:      "Total number of vote events published, labelled by result (ok/error).",
	},
	[]string{"result"},
)

// VoteEventsDroppedTotal counts events discarded because a worker channel was full.
var VoteEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vote_events_dropped_total",
		Help:      "Total number of vote events dropped because the dispatcher queue was full.",
	},
)

// VoteEventsQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index ("0", "1", ...)
var VoteEventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "vote_events_queue_depth",
		Help:      "Current number of vote events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
