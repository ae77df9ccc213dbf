package verifone

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	domainErrors "github.com/raidergo/checkout/internal/domain/errors"
	"github.com/raidergo/checkout/internal/pkg/signature"
)

// SaleStatus is the payment state reported in an IPN callback.
type SaleStatus string

const (
	SaleStatusComplete SaleStatus = "COMPLETE"
	SaleStatusAuthCC   SaleStatus = "AUTHCC"
)

// Paid reports whether the status means the charge went through.
func (s SaleStatus) Paid() bool {
	return s == SaleStatusComplete || s == SaleStatusAuthCC
}

const hashField = "HASH"

// Notification is an authenticated, parsed IPN callback.
type Notification struct {
	RefNo             string
	SaleStatus        SaleStatus
	TotalPrice        float64
	Currency          string
	CustomerEmail     string
	ExternalReference string
}

// IPNVerifier authenticates and decodes form-encoded IPN callbacks.
type IPNVerifier struct {
	signer *signature.Signer
}

// NewIPNVerifier builds the verifier around the shared IPN secret.
func NewIPNVerifier(signer *signature.Signer) (*IPNVerifier, error) {
	if signer == nil {
		return nil, domainErrors.ErrNotConfigured
	}
	return &IPNVerifier{signer: signer}, nil
}

// Parse authenticates the form against its HASH field and extracts the
// notification. A missing or mismatching digest is a hard reject: the
// payload never reaches business logic unauthenticated.
func (v *IPNVerifier) Parse(form url.Values) (*Notification, error) {
	params := make(map[string]string, len(form))
	for key, values := range form {
		if key == hashField {
			continue
		}
		params[key] = strings.Join(values, ",")
	}

	if err := v.signer.Verify(params, form.Get(hashField)); err != nil {
		return nil, err
	}

	n := &Notification{
		RefNo:             form.Get("REFNO"),
		SaleStatus:        SaleStatus(form.Get("SALE_STATUS")),
		Currency:          form.Get("CURRENCY"),
		CustomerEmail:     form.Get("CUSTOMER_EMAIL"),
		ExternalReference: form.Get("EXTERNAL_REFERENCE"),
	}

	if raw := form.Get("TOTAL_PRICE"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("parse total price %q: %w", raw, err)
		}
		n.TotalPrice = price
	}

	return n, nil
}

// SplitExternalReference resolves the correlation token: a token with a
// separator carries explicit buyer and course ids, a bare token is just a
// course id whose buyer must be resolved by customer email.
func SplitExternalReference(ref string) (buyerID, courseID string) {
	if i := strings.IndexByte(ref, '|'); i >= 0 {
		return ref[:i], ref[i+1:]
	}
	return "", ref
}
