package extractor_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"contaluz/internal/extractor"
	"contaluz/internal/port"
)

func TestEncodeDocument(t *testing.T) {
	doc, err := extractor.EncodeDocument(strings.NewReader("fake pdf bytes"), "application/pdf")

	assert.NoError(t, err)
	assert.Equal(t, "application/pdf", doc.MIMEType)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("fake pdf bytes")), doc.Data)
}

func TestNormalizeDocument_StripsDataURLPrefix(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("image bytes"))
	doc := port.BillDocument{
		MIMEType: "image/png",
		Data:     "data:image/png;base64," + payload,
	}

	normalized := extractor.NormalizeDocument(doc)

	assert.Equal(t, payload, normalized.Data)
}

func TestNormalizeDocument_LeavesBarePayload(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("bytes"))
	doc := port.BillDocument{MIMEType: "application/pdf", Data: payload}

	assert.Equal(t, payload, extractor.NormalizeDocument(doc).Data)
}

func TestDecodeDocument_RoundTrip(t *testing.T) {
	doc, err := extractor.EncodeDocument(strings.NewReader("round trip"), "application/pdf")
	assert.NoError(t, err)

	raw, err := extractor.DecodeDocument(doc)
	assert.NoError(t, err)
	assert.Equal(t, []byte("round trip"), raw)
}

func TestDecodeDocument_InvalidBase64(t *testing.T) {
	_, err := extractor.DecodeDocument(port.BillDocument{Data: "!!not base64!!"})
	assert.Error(t, err)
}

func TestResponseSchema_RequiredFields(t *testing.T) {
	schema := extractor.ResponseSchema()

	items, ok := schema["items"].(map[string]interface{})
	assert.True(t, ok)
	assert.ElementsMatch(t,
		[]string{"company", "date", "cost", "consumption", "installationNumber"},
		items["required"])
}

func TestBuildBillPrompt_MentionsMonthFormat(t *testing.T) {
	prompt := extractor.BuildBillPrompt()

	assert.Contains(t, prompt, "AAAA-MM")
}
