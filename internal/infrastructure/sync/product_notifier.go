// Package sync implements the best-effort cross-service sync caller. The
// only thing it synchronizes is the product's image list after a media
// upload; delivery is at-most-once and a lost notification is an accepted,
// bounded inconsistency.
package sync

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/marketkit/marketplace-system/internal/api/metrics"
	"github.com/marketkit/marketplace-system/internal/api/middleware"
)

// notifyTimeout bounds a single delivery attempt so a slow product service
// can never hang the upload path.
const notifyTimeout = 3 * time.Second

// ProductNotifier posts media attachments to the product service's internal
// endpoint, authenticated by the shared internal secret. MediaAttached
// returns nothing: by contract the caller's outcome is already decided and
// nothing that happens here may change it.
type ProductNotifier struct {
	baseURL string
	secret  string
	client  *http.Client
	log     zerolog.Logger
}

func NewProductNotifier(baseURL, secret string, log zerolog.Logger) *ProductNotifier {
	return &ProductNotifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
		client:  &http.Client{Timeout: notifyTimeout},
		log:     log,
	}
}

// MediaAttached fires one detached delivery attempt and returns immediately.
func (n *ProductNotifier) MediaAttached(productID, mediaID string) {
	if n.secret == "" || n.baseURL == "" {
		metrics.SyncNotificationsTotal.WithLabelValues("skipped").Inc()
		n.log.Debug().Str("product_id", productID).Msg("sync notification skipped, internal secret or target unconfigured")
		return
	}
	go n.deliver(productID, mediaID)
}

// deliver performs the actual POST. All failures end here: logged, counted,
// and dropped.
func (n *ProductNotifier) deliver(productID, mediaID string) {
	body, err := json.Marshal(map[string]string{"mediaId": mediaID})
	if err != nil {
		n.fail(productID, mediaID, err)
		return
	}

	url := n.baseURL + "/api/products/" + productID + "/images"
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		n.fail(productID, mediaID, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderInternalToken, n.secret)

	resp, err := n.client.Do(req)
	if err != nil {
		n.fail(productID, mediaID, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		n.log.Warn().
			Int("status", resp.StatusCode).
			Str("product_id", productID).
			Str("media_id", mediaID).
			Msg("sync notification rejected")
		metrics.SyncNotificationsTotal.WithLabelValues("error").Inc()
		return
	}

	metrics.SyncNotificationsTotal.WithLabelValues("ok").Inc()
	n.log.Info().Str("product_id", productID).Str("media_id", mediaID).Msg("sync notification delivered")
}

func (n *ProductNotifier) fail(productID, mediaID string, err error) {
	n.log.Warn().Err(err).
		Str("product_id", productID).
		Str("media_id", mediaID).
		Msg("sync notification failed")
	metrics.SyncNotificationsTotal.WithLabelValues("error").Inc()
}
