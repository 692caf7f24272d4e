package port

import (
	"context"

	"contaluz/internal/domain"
)

// BillDocument is the transport-safe form of an uploaded file: its media type
// and a base64 payload with any data-URL framing already stripped.
type BillDocument struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

// BillExtractor abstracts the AI document-understanding service. One call per
// batch; a syntactically invalid response fails the whole batch. Field-level
// business validation is the ingestion layer's job, not the extractor's.
type BillExtractor interface {
	Extract(ctx context.Context, docs []BillDocument) ([]domain.CandidateBill, error)
}
