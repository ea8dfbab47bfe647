// Package signature builds the signed header set the NAV Online Invoice API
// requires on every call.
//
// The signature is RSA PKCS#1 v1.5 over SHA-512 of "requestId|timestamp".
// The receiving service recomputes it from the X-REQUEST-ID and X-TIMESTAMP
// headers, so the identifier and timestamp sent must be exactly the ones signed.
package signature

import (
	"crypto/rsa"
	"time"

	"github.com/alapierre/go-nav-client/nav/keys"
	"github.com/sirupsen/logrus"
)

var logger = logrus.WithField("component", "nav.signature")

type Option func(*Builder)

// WithClock replaces time.Now as the source of the signed instant.
func WithClock(clock func() time.Time) Option {
	return func(b *Builder) { b.clock = clock }
}

// WithRequestIDGenerator replaces the process-wide request identifier generator.
func WithRequestIDGenerator(g *RequestIDGenerator) Option {
	return func(b *Builder) { b.ids = g }
}

// Builder produces signed header sets for one set of credentials.
// The signing key is parsed once; Build is safe for concurrent use.
type Builder struct {
	user        string
	password    string
	exchangeKey string
	key         *rsa.PrivateKey

	clock func() time.Time
	ids   *RequestIDGenerator
}

// NewBuilder validates creds and parses the signing key. It fails with
// ConfigurationError before touching the key, and with KeyFormatError when
// the key is not a usable RSA private key.
func NewBuilder(creds Credentials, opts ...Option) (*Builder, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	b := &Builder{
		user:        creds.User,
		password:    creds.Password,
		exchangeKey: creds.ExchangeKey,
		clock:       time.Now,
		ids:         defaultRequestIDs,
	}
	for _, o := range opts {
		o(b)
	}
	if b.clock == nil {
		b.clock = time.Now
	}
	if b.ids == nil {
		b.ids = defaultRequestIDs
	}

	var password []byte
	if creds.SigningKeyPassword != "" {
		password = []byte(creds.SigningKeyPassword)
	}
	key, err := keys.ParseRSAPrivateKey([]byte(creds.SigningKey), password)
	if err != nil {
		return nil, &KeyFormatError{Err: err}
	}
	b.key = key

	logger.WithField("user", creds.User).Debug("signing key loaded")
	return b, nil
}

// BuildSignedHeaders is the one-shot form: it validates, parses the key and
// signs a fresh request identifier and timestamp in a single call.
func BuildSignedHeaders(creds Credentials, opts ...Option) (*Headers, error) {
	b, err := NewBuilder(creds, opts...)
	if err != nil {
		return nil, err
	}
	return b.Build()
}

// Build samples the clock once and returns headers for a fresh request
// identifier. Every call, including retries, must use its own result.
func (b *Builder) Build() (*Headers, error) {
	now := b.clock()
	return b.HeadersFor(b.ids.Next(now), now)
}

// HeadersFor signs a caller supplied request identifier at instant at.
// It is meant for checking fixed vectors. The identifier does not go through
// the request identifier generator, so nothing stops it from being reused,
// and NAV rejects a reused identifier as a replay. Use Build for real requests.
func (b *Builder) HeadersFor(requestID string, at time.Time) (*Headers, error) {
	ts := FormatTimestamp(at)

	var sig string
	if requestID != "" {
		var err error
		sig, err = Sign(b.key, SigningInput(requestID, ts))
		if err != nil {
			return nil, err
		}
	}

	h := &Headers{
		ContentType: ContentTypeJSON,
		ExchangeKey: b.exchangeKey,
		User:        b.user,
		Password:    b.password,
		RequestID:   requestID,
		Timestamp:   ts,
		Signature:   sig,
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"timestamp":  ts,
	}).Debug("signed request headers built")
	return h, nil
}

// PublicKey returns the public half of the signing key, for local verification.
func (b *Builder) PublicKey() *rsa.PublicKey {
	return &b.key.PublicKey
}
