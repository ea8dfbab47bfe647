package signature

import (
	"fmt"
	"strings"
)

// Credentials is the per technical-user configuration bundle. Keep one value
// per user; nothing in this package stores credentials globally.
type Credentials struct {
	User        string
	Password    string
	ExchangeKey string
	// SigningKey holds PEM or DER encoded RSA private key material.
	SigningKey string
	// SigningKeyPassword decrypts an ENCRYPTED PRIVATE KEY block; optional otherwise.
	SigningKeyPassword string
}

// Validate returns a ConfigurationError for the first empty required field.
func (c Credentials) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"username", c.User},
		{"password", c.Password},
		{"exchangeKey", c.ExchangeKey},
		{"signingKey", c.SigningKey},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ConfigurationError{Field: r.name}
		}
	}
	return nil
}

func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{User: %s}", c.User)
}

// GoString keeps %#v output free of the password and key material.
func (c Credentials) GoString() string {
	return fmt.Sprintf("signature.Credentials{User: %q}", c.User)
}
