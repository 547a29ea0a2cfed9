package payment

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/rei-kenpai/backend/internal/config"
)

// Client is a minimal processor API client. The API is form-encoded with
// bearer authentication, Stripe-style.
type Client struct {
	config     config.PaymentConfig
	httpClient *http.Client
}

func NewClient(cfg config.PaymentConfig) *Client {
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) CreateCheckoutSession(input CheckoutSessionInput) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][price_data][currency]", "jpy")
	form.Set("line_items[0][price_data][product_data][name]", input.ProductName)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(input.AmountJPY, 10))
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", input.SuccessURL)
	form.Set("cancel_url", input.CancelURL)
	for key, value := range input.Metadata {
		form.Set("metadata["+key+"]", value)
	}

	var session CheckoutSession
	if err := c.post("/checkout/sessions", form, &session); err != nil {
		return nil, errors.Wrap(err, "create checkout session")
	}

	return &session, nil
}

func (c *Client) CreateAccount(input CreateAccountInput) (*Account, error) {
	form := url.Values{}
	form.Set("type", "standard")
	form.Set("country", input.Country)
	form.Set("email", input.Email)
	for key, value := range input.Metadata {
		form.Set("metadata["+key+"]", value)
	}

	var account Account
	if err := c.post("/accounts", form, &account); err != nil {
		return nil, errors.Wrap(err, "create account")
	}

	return &account, nil
}

func (c *Client) CreateAccountLink(accountID string, refreshURL string, returnURL string) (*AccountLink, error) {
	form := url.Values{}
	form.Set("account", accountID)
	form.Set("refresh_url", refreshURL)
	form.Set("return_url", returnURL)
	form.Set("type", "account_onboarding")

	var link AccountLink
	if err := c.post("/account_links", form, &link); err != nil {
		return nil, errors.Wrap(err, "create account link")
	}

	return &link, nil
}

func (c *Client) RetrieveAccount(accountID string) (*Account, error) {
	req, err := http.NewRequest(http.MethodGet, c.config.BaseURL+"/accounts/"+accountID, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("Authorization", "Bearer "+c.config.SecretKey)

	var account Account
	if err := c.do(req, &account); err != nil {
		return nil, errors.Wrap(err, "retrieve account")
	}

	return &account, nil
}

// ParseEvent decodes a webhook payload into an Event.
func ParseEvent(payload []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, errors.Wrap(err, "decode webhook event")
	}

	if event.Type == "" {
		return nil, errors.New("webhook event missing type")
	}

	return &event, nil
}

func (c *Client) post(path string, form url.Values, out interface{}) error {
	req, err := http.NewRequest(http.MethodPost, c.config.BaseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header.Set("Authorization", "Bearer "+c.config.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return errors.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response")
	}

	return nil
}
