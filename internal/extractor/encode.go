// Package extractor holds the document-encoding helpers and the shared
// extraction prompt and schema used by the AI bill extraction client.
package extractor

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"contaluz/internal/port"
)

// EncodeDocument reads a raw file and produces its transport-safe form:
// media type plus base64 payload. Read errors propagate to the caller.
func EncodeDocument(r io.Reader, mimeType string) (port.BillDocument, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return port.BillDocument{}, fmt.Errorf("reading document: %w", err)
	}
	return port.BillDocument{
		MIMEType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(data),
	}, nil
}

// NormalizeDocument strips any data-URL framing prefix
// ("data:<mime>;base64,") browsers prepend when encoding files, leaving the
// bare base64 payload.
func NormalizeDocument(doc port.BillDocument) port.BillDocument {
	if strings.HasPrefix(doc.Data, "data:") {
		if idx := strings.Index(doc.Data, ","); idx >= 0 {
			doc.Data = doc.Data[idx+1:]
		}
	}
	return doc
}

// DecodeDocument returns the raw bytes behind a document payload.
func DecodeDocument(doc port.BillDocument) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(doc.Data)
	if err != nil {
		return nil, fmt.Errorf("decoding document payload: %w", err)
	}
	return data, nil
}
