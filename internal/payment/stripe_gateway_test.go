package payment

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRoundTripper allows us to mock the HTTP response
type MockRoundTripper func(req *http.Request) *http.Response

func (f MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

type MockRoundTripperWithError func(req *http.Request) (*http.Response, error)

func (f MockRoundTripperWithError) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func sampleRequest() SessionRequest {
	return SessionRequest{
		LineItems: []LineItem{
			{Name: "Mug", UnitAmount: 1000, Quantity: 2},
			{Name: "Tee", UnitAmount: 550, Quantity: 1},
		},
		SuccessURL: "https://shop.test/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  "https://shop.test/checkout/cancel",
	}
}

func TestNewStripeGateway_Defaults(t *testing.T) {
	gw := NewStripeGateway("sk", "", 0).(*stripeGateway)
	assert.Equal(t, defaultBaseURL, gw.baseURL)
	assert.Equal(t, defaultTimeout, gw.httpClient.Timeout)

	gw = NewStripeGateway("sk", "http://localhost:12111/", 2*time.Second).(*stripeGateway)
	assert.Equal(t, "http://localhost:12111", gw.baseURL)
	assert.Equal(t, 2*time.Second, gw.httpClient.Timeout)
}

func TestStripeGateway_CreateSession(t *testing.T) {
	gw := NewStripeGateway("sk_test", "https://api.stripe.test", time.Second).(*stripeGateway)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			assert.Equal(t, http.MethodPost, req.Method)
			assert.Equal(t, "https://api.stripe.test/v1/checkout/sessions", req.URL.String())
			assert.Equal(t, "Bearer sk_test", req.Header.Get("Authorization"))

			require.NoError(t, req.ParseForm())
			assert.Equal(t, "payment", req.PostForm.Get("mode"))
			assert.Equal(t, "usd", req.PostForm.Get("line_items[0][price_data][currency]"))
			assert.Equal(t, "Mug", req.PostForm.Get("line_items[0][price_data][product_data][name]"))
			assert.Equal(t, "1000", req.PostForm.Get("line_items[0][price_data][unit_amount]"))
			assert.Equal(t, "2", req.PostForm.Get("line_items[0][quantity]"))
			assert.Equal(t, "550", req.PostForm.Get("line_items[1][price_data][unit_amount]"))
			assert.Equal(t, "https://shop.test/checkout/cancel", req.PostForm.Get("cancel_url"))

			return jsonResponse(http.StatusOK, `{"id":"cs_test_1","url":"https://checkout.stripe.test/c/cs_test_1"}`)
		})

		sess, err := gw.CreateSession(ctx, sampleRequest())
		require.NoError(t, err)
		assert.Equal(t, "cs_test_1", sess.ID)
		assert.Equal(t, "https://checkout.stripe.test/c/cs_test_1", sess.URL)
	})

	t.Run("API error surfaces gateway message", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusBadRequest, `{"error":{"type":"invalid_request_error","message":"Invalid API Key provided"}}`)
		})

		_, err := gw.CreateSession(ctx, sampleRequest())
		var gwErr *GatewayError
		require.ErrorAs(t, err, &gwErr)
		assert.Equal(t, http.StatusBadRequest, gwErr.StatusCode)
		assert.Equal(t, "Invalid API Key provided", gwErr.Message)
	})

	t.Run("Non JSON error body", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusBadGateway, "upstream down")
		})

		_, err := gw.CreateSession(ctx, sampleRequest())
		var gwErr *GatewayError
		require.ErrorAs(t, err, &gwErr)
		assert.Equal(t, "upstream down", gwErr.Message)
	})

	t.Run("Transport error", func(t *testing.T) {
		netErr := errors.New("connection refused")
		gw.httpClient.Transport = MockRoundTripperWithError(func(req *http.Request) (*http.Response, error) {
			return nil, netErr
		})

		_, err := gw.CreateSession(ctx, sampleRequest())
		var gwErr *GatewayError
		require.ErrorAs(t, err, &gwErr)
		assert.Equal(t, 0, gwErr.StatusCode)
		assert.ErrorIs(t, err, netErr)
	})

	t.Run("Malformed success body", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusOK, `{"id":`)
		})

		_, err := gw.CreateSession(ctx, sampleRequest())
		var gwErr *GatewayError
		assert.ErrorAs(t, err, &gwErr)
	})

	t.Run("No line items", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			t.Fatal("gateway must not be called")
			return nil
		})

		_, err := gw.CreateSession(ctx, SessionRequest{})
		assert.ErrorIs(t, err, ErrNoLineItems)
	})
}
