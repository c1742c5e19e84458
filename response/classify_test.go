// response/classify_test.go
package response

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func header(contentType string) http.Header {
	h := http.Header{}
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return h
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        Kind
	}{
		{"jpeg photo", "image/jpeg", "\xff\xd8\xff", KindImage},
		{"octet stream", "application/octet-stream", "binary", KindImage},
		{"html", "text/html; charset=utf-8", "<html></html>", KindHTML},
		{"xhtml", "application/xhtml+xml", "<html/>", KindHTML},
		{"metadata xml", "application/xml", `<?xml version="1.0"?><edmx:Edmx/>`, KindXML},
		{"xml under json header", "application/json", `<?xml version="1.0"?><a/>`, KindXML},
		{"graph json", "application/json;odata.metadata=minimal", `{"value":[]}`, KindJSON},
		{"json without header", "", `{"value":[]}`, KindJSON},
		{"plain text", "text/plain", "hello", KindText},
		{"empty body", "", "", KindText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(header(tt.contentType), []byte(tt.body)))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "json", KindJSON.String())
	assert.Equal(t, "xml", KindXML.String())
	assert.Equal(t, "html", KindHTML.String())
	assert.Equal(t, "image", KindImage.String())
	assert.Equal(t, "text", KindText.String())
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", ContentType(header("Application/JSON; charset=utf-8")))
	assert.Equal(t, "", ContentType(header("")))
}
