package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"myshop-be/internal/logger"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://api.stripe.com"
	defaultTimeout = 15 * time.Second
)

type stripeGateway struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// ----------------- Constructor -----------------

func NewStripeGateway(apiKey, baseURL string, timeout time.Duration) Gateway {
	if apiKey == "" {
		logger.L().Warn("Stripe API key is empty")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &stripeGateway{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ----------------- CreateSession -----------------

func (s *stripeGateway) CreateSession(ctx context.Context, in SessionRequest) (*Session, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "gateway"),
		zap.String("method", "CreateSession"),
		zap.Int("line_items", len(in.LineItems)),
	)

	if len(in.LineItems) == 0 {
		return nil, ErrNoLineItems
	}

	form := encodeSessionForm(in)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		log.Error("Failed creating request", zap.Error(err))
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	log.Info("Sending checkout session request to Stripe")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Error("Stripe request failed", zap.Error(err))
		return nil, &GatewayError{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return nil, &GatewayError{StatusCode: resp.StatusCode, Message: "unreadable response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("Stripe returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, &GatewayError{StatusCode: resp.StatusCode, Message: errorMessage(bodyBytes)}
	}

	var res stripeSessionResponse
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("Failed decoding Stripe response", zap.Error(err))
		return nil, &GatewayError{StatusCode: resp.StatusCode, Message: "malformed response", Err: err}
	}
	if res.ID == "" {
		return nil, &GatewayError{StatusCode: resp.StatusCode, Message: "response without session id"}
	}

	log.Info("Stripe checkout session created", zap.String("session_id", res.ID))

	return &Session{ID: res.ID, URL: res.URL}, nil
}

// encodeSessionForm builds Stripe's bracketed form encoding.
func encodeSessionForm(in SessionRequest) url.Values {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("success_url", in.SuccessURL)
	form.Set("cancel_url", in.CancelURL)
	if in.CustomerEmail != "" {
		form.Set("customer_email", in.CustomerEmail)
	}

	for i, li := range in.LineItems {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[price_data][currency]", Currency)
		form.Set(prefix+"[price_data][product_data][name]", li.Name)
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(li.UnitAmount, 10))
		form.Set(prefix+"[quantity]", strconv.FormatInt(li.Quantity, 10))
	}
	return form
}

func errorMessage(body []byte) string {
	var e stripeErrorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return "unexpected response"
}
