package enrichment

import "context"

// Result statuses.
const (
	StatusSuccess = "success"
	StatusSkipped = "skipped"
	StatusError   = "error"
)

// Skip and error reasons. These surface in task results and the backfill
// summary, so they are stable identifiers rather than prose.
const (
	ReasonNotFound         = "not_found"
	ReasonNotPublished     = "not_published"
	ReasonNoImage          = "no_image"
	ReasonRecentlyReviewed = "recently_reviewed"
	ReasonDownloadFailed   = "download_failed"
	ReasonAPIError         = "api_error"
	ReasonBadResponse      = "bad_response"
	ReasonQuality          = "quality"
)

// Result reports the outcome of one pass over one item.
type Result struct {
	ItemID        string   `json:"item_id"`
	Status        string   `json:"status"`
	Reason        string   `json:"reason,omitempty"`
	UpdatedFields []string `json:"updated_fields,omitempty"`
	Fallback      bool     `json:"fallback,omitempty"`
}

func (r Result) OK() bool { return r.Status == StatusSuccess }

func succeeded(itemID string, fields ...string) Result {
	return Result{ItemID: itemID, Status: StatusSuccess, UpdatedFields: fields}
}

func skipped(itemID, reason string) Result {
	return Result{ItemID: itemID, Status: StatusSkipped, Reason: reason}
}

func failed(itemID, reason string) Result {
	return Result{ItemID: itemID, Status: StatusError, Reason: reason}
}

// MediaRenamer renames stored media objects to slug-derived keys. The
// storage module implements it; enrichment only triggers it after a pass
// changes an item's slug.
type MediaRenamer interface {
	RenameForSEO(ctx context.Context, itemID string) error
}

// taskPayload is the queue payload shared by all enrichment task types.
type taskPayload struct {
	ItemID string `json:"item_id"`
}
