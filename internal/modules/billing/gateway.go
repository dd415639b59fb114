package billing

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/vendahq/backoffice/internal/modules/store"
)

// CheckoutGateway abstracts the hosted payment-setup page. The returned URL
// is opaque; the caller's only obligation is to send the browser there.
type CheckoutGateway interface {
	// CreateSession starts a checkout for putting a payment method on file
	// and subscribing the store to the target plan.
	CreateSession(ctx context.Context, storeID string, target store.Plan) (checkoutURL string, err error)
}

// ── Hosted checkout adapter ───────────────────────────────────────────────────
// In production, replace the stub with the processor's checkout-session API.

type hostedCheckoutGateway struct {
	apiKey  string
	baseURL string
	env     string // sandbox | production
}

func NewHostedCheckoutGateway(apiKey, baseURL, env string) CheckoutGateway {
	return &hostedCheckoutGateway{apiKey: apiKey, baseURL: baseURL, env: env}
}

func (g *hostedCheckoutGateway) CreateSession(ctx context.Context, storeID string, target store.Plan) (string, error) {
	if !target.Valid() {
		return "", fmt.Errorf("cannot create checkout session for unknown plan %q", target)
	}

	// ── PRODUCTION INTEGRATION POINT ──────────────────────────────────────────
	// POST {baseURL}/v1/checkout/sessions
	//   Headers: Authorization: Bearer {apiKey}
	//   Body: { mode: "subscription", line_items: [{ price: <plan price id> }],
	//           client_reference_id: storeID, success_url, cancel_url }
	// Return the session's hosted URL.
	// ──────────────────────────────────────────────────────────────────────────

	// Sandbox stub: mint an opaque session URL
	session := fmt.Sprintf("cs_%s_%06d", g.env, rand.Intn(1000000))
	return fmt.Sprintf("%s/c/pay/%s", g.baseURL, session), nil
}
