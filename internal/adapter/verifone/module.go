package verifone

import (
	"go.uber.org/fx"

	"github.com/raidergo/checkout/internal/config"
	"github.com/raidergo/checkout/internal/pkg/signature"
)

// Module wires the buy-link builder and IPN verifier, each with its own
// shared secret.
var Module = fx.Provide(newLinkBuilder, newIPNVerifier)

type builderParams struct {
	fx.In

	Config *config.Config
}

func newLinkBuilder(p builderParams) (*LinkBuilder, error) {
	signer, err := signature.NewSigner(p.Config.VerifoneBuyLinkSecret)
	if err != nil {
		return nil, err
	}
	return NewLinkBuilder(p.Config.VerifoneCheckoutURL, p.Config.VerifoneMerchantCode, p.Config.PublicBaseURL, signer)
}

func newIPNVerifier(p builderParams) (*IPNVerifier, error) {
	signer, err := signature.NewSigner(p.Config.VerifoneIPNSecret)
	if err != nil {
		return nil, err
	}
	return NewIPNVerifier(signer)
}
