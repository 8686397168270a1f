// Package metrics defines and registers all custom Prometheus metrics for
// the marketplace services. It is the single source of truth for metric
// names, labels, and help strings; everything registers against the default
// registry at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Token metrics ─────────────────────────────────────────────────────────────

// TokensIssuedTotal counts tokens issued at registration and login.
// Label:
//   - role: "CLIENT" or "SELLER"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of signed tokens issued.",
	},
	[]string{"role"},
)

// TokenVerifyFailuresTotal counts bearer tokens that failed verification.
// The request itself proceeds anonymously; this counter is what keeps the
// absent-vs-invalid distinction observable.
// Label:
//   - reason: "expired" or "malformed"
var TokenVerifyFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verify_failures_total",
		Help:      "Total number of presented bearer tokens that failed verification.",
	},
	[]string{"reason"},
)

// ── Internal trust metrics ────────────────────────────────────────────────────

// InternalTrustDeniedTotal counts requests rejected by the internal trust
// gate (missing or incorrect X-Internal-Token).
var InternalTrustDeniedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "internal_trust_denied_total",
		Help:      "Total number of internal-only requests rejected by the trust gate.",
	},
)

// SyncNotificationsTotal counts outbound cross-service sync attempts.
// Label:
//   - result: "ok", "error", or "skipped" (secret or target unconfigured)
var SyncNotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_notifications_total",
		Help:      "Total number of best-effort cross-service sync notifications, by result.",
	},
	[]string{"result"},
)

// ── Domain metrics ────────────────────────────────────────────────────────────

// ProductsCreatedTotal counts newly created products.
var ProductsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_created_total",
		Help:      "Total number of products created.",
	},
)

// MediaUploadsTotal counts media upload attempts.
// Label:
//   - result: "ok", "rejected" (validation), or "replayed" (idempotent hit)
var MediaUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_uploads_total",
		Help:      "Total number of media upload attempts, by result.",
	},
	[]string{"result"},
)
