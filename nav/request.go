// Package nav prepares signed requests for the NAV Online Invoice API.
// Sending them, retrying and interpreting responses is left to the caller.
package nav

import (
	"bytes"
	"context"
	"net/http"

	"github.com/alapierre/go-nav-client/nav/model"
	"github.com/alapierre/go-nav-client/nav/signature"
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/sirupsen/logrus"
)

var logger = logrus.WithField("component", "nav")

const ManageInvoicePath = "/invoiceApi/manageInvoice"

var (
	ErrNoSigner = errors.New("nav: signer is nil")
	ErrNoBody   = errors.New("nav: request body is nil")
)

// Signer returns a freshly signed header set on every call.
// *signature.Builder satisfies it.
type Signer interface {
	Build() (*signature.Headers, error)
}

// Encoder is implemented by request bodies in the model package.
type Encoder interface {
	Encode(e *jx.Encoder)
}

// NewSignedRequest builds a POST to env's base URL plus path with body
// encoded as JSON and a fresh set of signed headers attached.
// A retry must call it again; reusing the returned request would replay
// the same request identifier.
func NewSignedRequest(ctx context.Context, env Environment, signer Signer, path string, body Encoder) (*http.Request, error) {
	if signer == nil {
		return nil, ErrNoSigner
	}
	if body == nil {
		return nil, ErrNoBody
	}

	e := jx.GetEncoder()
	defer jx.PutEncoder(e)
	body.Encode(e)
	payload := append([]byte(nil), e.Bytes()...)

	headers, err := signer.Build()
	if err != nil {
		return nil, errors.Wrap(err, "sign request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, env.BaseURL()+path, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	headers.Apply(req.Header)

	logger.WithFields(logrus.Fields{
		"env":        env.Name(),
		"path":       path,
		"request_id": headers.RequestID,
	}).Debug("signed request prepared")
	return req, nil
}

// NewManageInvoiceRequest prepares the manageInvoice submission.
func NewManageInvoiceRequest(ctx context.Context, env Environment, signer Signer, body *model.ManageInvoiceRequest) (*http.Request, error) {
	if body == nil {
		return nil, ErrNoBody
	}
	return NewSignedRequest(ctx, env, signer, ManageInvoicePath, body)
}
