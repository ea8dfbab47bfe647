package signature

import (
	"fmt"
	"net/http"
)

// Header names expected by the NAV Online Invoice endpoint.
const (
	HeaderContentType = "Content-Type"
	HeaderAPIKey      = "X-API-KEY"
	HeaderUserName    = "X-USER-NAME"
	HeaderPassword    = "X-PASSWORD"
	HeaderRequestID   = "X-REQUEST-ID"
	HeaderTimestamp   = "X-TIMESTAMP"
	HeaderSignature   = "X-SIGNATURE"

	ContentTypeJSON = "application/json"
)

// Headers is the complete header set for one outbound call.
type Headers struct {
	ContentType string
	ExchangeKey string
	User        string
	Password    string
	RequestID   string
	Timestamp   string
	Signature   string
}

// Validate reports every empty field as an IncompleteHeaderError.
func (h *Headers) Validate() error {
	var missing []string
	for _, f := range h.fields() {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &IncompleteHeaderError{Missing: missing}
	}
	return nil
}

// Map returns the headers keyed by their wire names.
func (h *Headers) Map() map[string]string {
	fs := h.fields()
	m := make(map[string]string, len(fs))
	for _, f := range fs {
		m[f.name] = f.value
	}
	return m
}

// Apply sets every header on dst, replacing existing values.
func (h *Headers) Apply(dst http.Header) {
	for _, f := range h.fields() {
		dst.Set(f.name, f.value)
	}
}

// String is safe to log: password, exchange key and signature are left out.
func (h Headers) String() string {
	return fmt.Sprintf("%s=%s %s=%s %s=%s",
		HeaderUserName, h.User,
		HeaderRequestID, h.RequestID,
		HeaderTimestamp, h.Timestamp)
}

type field struct {
	name  string
	value string
}

func (h *Headers) fields() []field {
	return []field{
		{HeaderContentType, h.ContentType},
		{HeaderAPIKey, h.ExchangeKey},
		{HeaderUserName, h.User},
		{HeaderPassword, h.Password},
		{HeaderRequestID, h.RequestID},
		{HeaderTimestamp, h.Timestamp},
		{HeaderSignature, h.Signature},
	}
}
