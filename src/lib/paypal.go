package lib

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"
	"usatag/src/config"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

type CaptureResult struct {
	ID     string
	Status string
	// Amount is the first captured amount; empty when the provider omitted it.
	Amount string
}

type PaymentProvider interface {
	CreateOrder(ctx context.Context, amount, currency string) (string, error)
	CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error)
}

type PayPalError struct {
	StatusCode int
	Message    string
}

func (e *PayPalError) Error() string {
	return fmt.Sprintf("paypal: %d %s", e.StatusCode, e.Message)
}

type PayPalClient struct {
	client       *resty.Client
	clientID     string
	clientSecret string

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

var paymentProvider PaymentProvider

func GetPaymentProvider() PaymentProvider {
	if paymentProvider != nil {
		return paymentProvider
	}
	paymentProvider = NewPayPalClient(config.PayPalBaseURL(), config.PayPalClientID(), config.PayPalClientSecret())
	return paymentProvider
}

// NewPaymentProvider Replace payment provider with custom implementation
func NewPaymentProvider(p PaymentProvider) PaymentProvider {
	paymentProvider = p
	return paymentProvider
}

func NewPayPalClient(baseURL, clientID, clientSecret string) *PayPalClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	return &PayPalClient{
		client:       c,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

func (p *PayPalClient) accessToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.token != "" && time.Now().Before(p.expiresAt) {
		return p.token, nil
	}
	resp, err := p.client.R().
		SetContext(ctx).
		SetBasicAuth(p.clientID, p.clientSecret).
		SetFormData(map[string]string{"grant_type": "client_credentials"}).
		Post("/v1/oauth2/token")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", paypalError(resp)
	}
	body := gjson.ParseBytes(resp.Body())
	token := body.Get("access_token").String()
	if token == "" {
		return "", &PayPalError{StatusCode: resp.StatusCode(), Message: "missing access token"}
	}
	ttl := time.Duration(body.Get("expires_in").Int()) * time.Second
	// refresh a minute early
	if ttl > time.Minute {
		ttl -= time.Minute
	}
	p.token = token
	p.expiresAt = time.Now().Add(ttl)
	return token, nil
}

func (p *PayPalClient) CreateOrder(ctx context.Context, amount, currency string) (string, error) {
	token, err := p.accessToken(ctx)
	if err != nil {
		log.Printf("[PayPal] token error: %s\n", err.Error())
		return "", err
	}
	payload := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{
			{
				"amount": map[string]string{
					"currency_code": currency,
					"value":         amount,
				},
			},
		},
	}
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetHeader("Prefer", "return=representation").
		SetBody(payload).
		Post("/v2/checkout/orders")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", paypalError(resp)
	}
	id := gjson.GetBytes(resp.Body(), "id").String()
	if id == "" {
		return "", &PayPalError{StatusCode: resp.StatusCode(), Message: "missing order id"}
	}
	return id, nil
}

func (p *PayPalClient) CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error) {
	token, err := p.accessToken(ctx)
	if err != nil {
		log.Printf("[PayPal] token error: %s\n", err.Error())
		return nil, err
	}
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetHeader("Prefer", "return=representation").
		SetPathParam("orderId", orderID).
		SetBody(map[string]any{}).
		Post("/v2/checkout/orders/{orderId}/capture")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, paypalError(resp)
	}
	body := gjson.ParseBytes(resp.Body())
	return &CaptureResult{
		ID:     body.Get("id").String(),
		Status: body.Get("status").String(),
		Amount: body.Get("purchase_units.0.payments.captures.0.amount.value").String(),
	}, nil
}

func paypalError(resp *resty.Response) error {
	body := gjson.ParseBytes(resp.Body())
	msg := body.Get("message").String()
	if msg == "" {
		msg = body.Get("error_description").String()
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode())
	}
	return &PayPalError{StatusCode: resp.StatusCode(), Message: msg}
}
