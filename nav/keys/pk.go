package keys

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	"github.com/go-faster/errors"
	"github.com/youmark/pkcs8"
)

const (
	blockRSAPrivateKey       = "RSA PRIVATE KEY"
	blockPrivateKey          = "PRIVATE KEY"
	blockEncryptedPrivateKey = "ENCRYPTED PRIVATE KEY"
)

var (
	ErrNoKey            = errors.New("no private key found")
	ErrPasswordRequired = errors.New("password is required for ENCRYPTED PRIVATE KEY")
)

// UnsupportedKeyError is returned when the key material parses but is not an RSA key.
type UnsupportedKeyError struct {
	Type string
}

func (e *UnsupportedKeyError) Error() string {
	return fmt.Sprintf("unsupported key type %s (expected RSA)", e.Type)
}

// LoadRSAPrivateKeyFromFile reads a signing key from path. See ParseRSAPrivateKey.
func LoadRSAPrivateKeyFromFile(path string, password []byte) (*rsa.PrivateKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read key file")
	}
	return ParseRSAPrivateKey(b, password)
}

// ParseRSAPrivateKey returns the first RSA private key found in data.
//
// PEM input may hold PKCS#1 (RSA PRIVATE KEY), PKCS#8 (PRIVATE KEY) or
// password protected PKCS#8 (ENCRYPTED PRIVATE KEY) blocks; other block types
// are skipped. Input without any PEM block is parsed as DER, PKCS#1 first.
func ParseRSAPrivateKey(data []byte, password []byte) (*rsa.PrivateKey, error) {
	if len(data) == 0 {
		return nil, ErrNoKey
	}

	rest := data
	sawPEM := false
	for len(rest) > 0 {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		sawPEM = true

		switch block.Type {
		case blockRSAPrivateKey:
			k, err := x509.ParsePKCS1PrivateKey(block.Bytes)
			if err != nil {
				return nil, errors.Wrap(err, "parse PKCS#1 private key")
			}
			return k, nil
		case blockPrivateKey:
			k, err := x509.ParsePKCS8PrivateKey(block.Bytes)
			if err != nil {
				return nil, errors.Wrap(err, "parse PKCS#8 private key")
			}
			return asRSA(k)
		case blockEncryptedPrivateKey:
			if len(password) == 0 {
				return nil, ErrPasswordRequired
			}
			k, err := pkcs8.ParsePKCS8PrivateKey(block.Bytes, password)
			if err != nil {
				return nil, errors.Wrap(err, "decrypt PKCS#8 encrypted private key")
			}
			return asRSA(k)
		}
	}
	if sawPEM {
		return nil, ErrNoKey
	}

	return parseDER(data)
}

func parseDER(der []byte) (*rsa.PrivateKey, error) {
	if k, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return k, nil
	}
	k, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, errors.Wrap(ErrNoKey, "input is neither PEM nor DER encoded key")
	}
	return asRSA(k)
}

func asRSA(key any) (*rsa.PrivateKey, error) {
	k, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, &UnsupportedKeyError{Type: fmt.Sprintf("%T", key)}
	}
	return k, nil
}
