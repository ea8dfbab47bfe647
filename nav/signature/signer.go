package signature

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha512"
	"encoding/base64"

	"github.com/go-faster/errors"
)

// SignatureVersion names the scheme the NAV endpoint recomputes. Any change
// to Separator, the digest or the padding must come with a new version.
const SignatureVersion = "RSA-SHA512-PKCS1v15"

// Separator joins the request identifier and the timestamp in the signing input.
const Separator = "|"

// SigningInput builds the exact string that gets hashed and signed.
func SigningInput(requestID, timestamp string) string {
	return requestID + Separator + timestamp
}

// Sign returns the standard base64 (unwrapped) PKCS#1 v1.5 signature over
// SHA-512(input). The result is deterministic for a given key and input.
func Sign(key *rsa.PrivateKey, input string) (string, error) {
	if key == nil {
		return "", &SigningError{Err: errors.New("private key is nil")}
	}

	digest := sha512.Sum512([]byte(input))

	sig, err := rsa.SignPKCS1v15(nil, key, crypto.SHA512, digest[:])
	if err != nil {
		return "", &SigningError{Err: err}
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

// Verify recomputes the signature check the way the receiving service does.
// It returns ErrSignatureMismatch when the signature does not cover
// requestID and timestamp.
func Verify(pub *rsa.PublicKey, requestID, timestamp, signature string) error {
	if pub == nil {
		return errors.New("public key is nil")
	}

	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return errors.Wrap(ErrSignatureMismatch, "signature is not valid base64")
	}

	digest := sha512.Sum512([]byte(SigningInput(requestID, timestamp)))
	if err := rsa.VerifyPKCS1v15(pub, crypto.SHA512, digest[:], sig); err != nil {
		return errors.Wrap(ErrSignatureMismatch, err.Error())
	}
	return nil
}
