package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"

	domainErrors "github.com/raidergo/checkout/internal/domain/errors"
)

// Signer computes keyed digests over the provider-mandated canonical
// parameter encoding: values are taken in lexicographic key order and each
// is prefixed by its decimal byte length, with no separators.
type Signer struct {
	secret []byte
}

// NewSigner builds a Signer. An empty secret is a configuration error:
// producing unsigned links or accepting unverified callbacks must never
// happen silently.
func NewSigner(secret string) (*Signer, error) {
	if secret == "" {
		return nil, domainErrors.ErrNotConfigured
	}
	return &Signer{secret: []byte(secret)}, nil
}

// Sign returns the lowercase hex HMAC-SHA256 digest of the canonical
// encoding of params.
func (s *Signer) Sign(params map[string]string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(Canonical(params)))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify recomputes the digest for params and compares it with the
// provided one in constant time. An absent digest never verifies.
func (s *Signer) Verify(params map[string]string, digest string) error {
	if digest == "" {
		return domainErrors.ErrSignatureMismatch
	}
	expected := s.Sign(params)
	if !hmac.Equal([]byte(expected), []byte(digest)) {
		return domainErrors.ErrSignatureMismatch
	}
	return nil
}

// Canonical builds the string to sign: for every key in sorted order,
// len(value) followed by value.
func Canonical(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []byte
	for _, k := range keys {
		v := params[k]
		out = append(out, strconv.Itoa(len(v))...)
		out = append(out, v...)
	}
	return string(out)
}
