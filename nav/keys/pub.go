package keys

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"time"

	"github.com/go-faster/errors"
)

var ErrNoPublicKey = errors.New("no public key found")

// ParseRSAPublicKey extracts an RSA public key from a PEM encoded
// PUBLIC KEY, RSA PUBLIC KEY or CERTIFICATE block.
func ParseRSAPublicKey(data []byte) (*rsa.PublicKey, error) {
	rest := data
	for len(rest) > 0 {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}

		switch block.Type {
		case "PUBLIC KEY":
			k, err := x509.ParsePKIXPublicKey(block.Bytes)
			if err != nil {
				return nil, errors.Wrap(err, "parse PKIX public key")
			}
			pub, ok := k.(*rsa.PublicKey)
			if !ok {
				return nil, &UnsupportedKeyError{Type: fmt.Sprintf("%T", k)}
			}
			return pub, nil
		case "RSA PUBLIC KEY":
			pub, err := x509.ParsePKCS1PublicKey(block.Bytes)
			if err != nil {
				return nil, errors.Wrap(err, "parse PKCS#1 public key")
			}
			return pub, nil
		case "CERTIFICATE":
			pub, _, err := parseCertDER(block.Bytes)
			return pub, err
		}
	}
	return nil, ErrNoPublicKey
}

// ParseRSAPublicKeyFromB64Cert returns the RSA key of a base64 encoded DER
// certificate together with the certificate expiry.
func ParseRSAPublicKeyFromB64Cert(certB64 string) (*rsa.PublicKey, time.Time, error) {
	der, err := base64.StdEncoding.DecodeString(certB64)
	if err != nil {
		return nil, time.Time{}, errors.Wrap(err, "decode cert")
	}
	return parseCertDER(der)
}

func parseCertDER(der []byte) (*rsa.PublicKey, time.Time, error) {
	xc, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, time.Time{}, errors.Wrap(err, "parse x509")
	}
	rsaPub, ok := xc.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, time.Time{}, &UnsupportedKeyError{Type: fmt.Sprintf("%T", xc.PublicKey)}
	}
	return rsaPub, xc.NotAfter, nil
}
