package verifone

import (
	"fmt"
	"net/url"
	"strconv"

	domainErrors "github.com/raidergo/checkout/internal/domain/errors"
	"github.com/raidergo/checkout/internal/domain/model"
	"github.com/raidergo/checkout/internal/pkg/signature"
)

// LinkBuilder produces signed hosted-checkout URLs. The signature covers
// exactly the parameter set emitted in the link; price and currency come
// from the stored course, never from the caller.
type LinkBuilder struct {
	checkoutURL  *url.URL
	merchantCode string
	publicBase   *url.URL
	signer       *signature.Signer
}

// NewLinkBuilder validates merchant configuration up front so an unsigned
// or unattributable link can never be generated.
func NewLinkBuilder(checkoutURL, merchantCode, publicBaseURL string, signer *signature.Signer) (*LinkBuilder, error) {
	if merchantCode == "" || signer == nil {
		return nil, domainErrors.ErrNotConfigured
	}
	parsed, err := url.Parse(checkoutURL)
	if err != nil {
		return nil, fmt.Errorf("parse checkout url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("checkout url must be absolute")
	}
	base, err := url.Parse(publicBaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse public base url: %w", err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("public base url must be absolute")
	}
	return &LinkBuilder{
		checkoutURL:  parsed,
		merchantCode: merchantCode,
		publicBase:   base,
		signer:       signer,
	}, nil
}

// BuildURL assembles the buy-link for a course on behalf of a buyer. The
// external reference carries buyerID|courseID through the provider
// round-trip so the asynchronous callback can be correlated back.
func (b *LinkBuilder) BuildURL(course *model.Course, buyerID string) (string, error) {
	if course.Price <= 0 {
		return "", domainErrors.ErrInvalidAmount
	}

	returnURL := *b.publicBase
	returnURL.Path = "/payment/success"
	returnURL.RawQuery = url.Values{"course_id": {course.ID}}.Encode()

	params := map[string]string{
		"merchant":       b.merchantCode,
		"cp-type":        "digital",
		"dynamic":        "1",
		"currency":       course.Currency,
		"item-name-0":    course.Title,
		"item-price-0":   strconv.FormatFloat(course.Price, 'f', 2, 64),
		"item-qty-0":     "1",
		"item-ext-ref-0": ExternalReference(buyerID, course.ID),
		"return-url":     returnURL.String(),
		"return-type":    "redirect",
	}

	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}
	query.Set("signature", b.signer.Sign(params))

	link := *b.checkoutURL
	link.RawQuery = query.Encode()
	return link.String(), nil
}

// ExternalReference composes the correlation token round-tripped through
// the provider.
func ExternalReference(buyerID, courseID string) string {
	return buyerID + "|" + courseID
}
