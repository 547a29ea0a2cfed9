package payment

// Package payment talks to the card-payment processor's REST API: hosted
// checkout sessions for kenpai contributions and connected payout accounts
// for funeral homes. Account mechanics beyond these thin calls are the
// processor's responsibility.

// Gateway is the boundary the services depend on.
type Gateway interface {
	CreateCheckoutSession(input CheckoutSessionInput) (*CheckoutSession, error)
	CreateAccount(input CreateAccountInput) (*Account, error)
	CreateAccountLink(accountID string, refreshURL string, returnURL string) (*AccountLink, error)
	RetrieveAccount(accountID string) (*Account, error)
}

type CheckoutSessionInput struct {
	AmountJPY   int64
	ProductName string
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

type CheckoutSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	AmountTotal   int64             `json:"amount_total"`
	PaymentStatus string            `json:"payment_status"`
	Metadata      map[string]string `json:"metadata"`
}

const PaymentStatusPaid = "paid"

type CreateAccountInput struct {
	Email    string
	Country  string
	Metadata map[string]string
}

type Account struct {
	ID             string `json:"id"`
	ChargesEnabled bool   `json:"charges_enabled"`
	PayoutsEnabled bool   `json:"payouts_enabled"`
}

type AccountLink struct {
	URL string `json:"url"`
}

// Event is a webhook notification from the processor.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object CheckoutSession `json:"object"`
	} `json:"data"`
}

const EventCheckoutSessionCompleted = "checkout.session.completed"
