package driven

import (
	"context"

	"github.com/custodia-labs/storesync-cli/internal/core/domain"
)

// Backend is the data-import service the control panel drives.
type Backend interface {
	// Submit posts the request to the endpoint for its kind.
	// A non-2xx answer is returned as *domain.RejectionError; a failure to
	// obtain a response is returned as *domain.TransportError.
	Submit(ctx context.Context, req domain.SubmissionRequest) (*domain.SubmissionResponse, error)

	// Activity fetches the per-store fetch ranges and last-sync bounds.
	Activity(ctx context.Context) (*domain.ActivitySnapshot, error)
}
