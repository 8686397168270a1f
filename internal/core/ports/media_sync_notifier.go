package ports

// MediaSyncNotifier tells the product service that a media record now exists
// for one of its products. The call is best-effort and at-most-once: it
// returns nothing and cannot fail observably. Failures are logged and
// dropped; the upload that triggered the call has already committed.
type MediaSyncNotifier interface {
	MediaAttached(productID, mediaID string)
}
