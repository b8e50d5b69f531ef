// Package payment wraps the external payment-link provider.  Order
// creation calls CreateLink exactly once per order; the returned
// reference is stored verbatim and never re-fetched or re-validated.
package payment

import (
    "context"
    "fmt"

    "github.com/midtrans/midtrans-go"
    "github.com/midtrans/midtrans-go/snap"
)

// Link is the opaque reference returned by the provider: a session token
// and the URL the customer is redirected to in order to pay.
type Link struct {
    Token       string
    RedirectURL string
}

// Linker issues a redirectable payment session for a given amount and
// external order code.  Implementations must be safe for concurrent use.
type Linker interface {
    CreateLink(ctx context.Context, amountCents int64, orderCode string) (Link, error)
}

// MidtransLinker implements Linker against the Midtrans Snap API.
type MidtransLinker struct {
    client snap.Client
}

// NewMidtransLinker builds a Snap client with the given server key.
// production selects the live environment instead of the sandbox.
func NewMidtransLinker(serverKey string, production bool) *MidtransLinker {
    env := midtrans.Sandbox
    if production {
        env = midtrans.Production
    }
    l := &MidtransLinker{}
    l.client.New(serverKey, env)
    return l
}

// CreateLink asks Snap for a payment session keyed by the order code.
// The context is accepted for interface symmetry; the Snap SDK manages
// its own HTTP timeouts.
func (l *MidtransLinker) CreateLink(_ context.Context, amountCents int64, orderCode string) (Link, error) {
    resp, err := l.client.CreateTransaction(&snap.Request{
        TransactionDetails: midtrans.TransactionDetails{
            OrderID:  orderCode,
            GrossAmt: amountCents,
        },
    })
    if err != nil {
        return Link{}, fmt.Errorf("midtrans create transaction: %w", err)
    }
    return Link{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}
