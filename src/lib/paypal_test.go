package lib

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newPayPalServer(t *testing.T, tokenCalls *int32) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(tokenCalls, 1)
		user, pass, ok := r.BasicAuth()
		if !ok || user != "client" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"invalid_client","error_description":"Client Authentication failed"}`))
			return
		}
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"A21","token_type":"Bearer","expires_in":32400}`))
	})
	mux.HandleFunc("/v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer A21", r.Header.Get("Authorization"))
		b, _ := io.ReadAll(r.Body)
		assert.Equal(t, "CAPTURE", gjson.GetBytes(b, "intent").String())
		assert.Equal(t, "USD", gjson.GetBytes(b, "purchase_units.0.amount.currency_code").String())
		if gjson.GetBytes(b, "purchase_units.0.amount.value").String() == "0" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"name":"UNPROCESSABLE_ENTITY","message":"The requested action could not be performed."}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"5O190127TN364715T","status":"CREATED"}`))
	})
	mux.HandleFunc("/v2/checkout/orders/ORDER-1/capture", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"ORDER-1","status":"COMPLETED","purchase_units":[{"payments":{"captures":[{"id":"CAP","amount":{"currency_code":"USD","value":"150.00"}}]}}]}`))
	})
	mux.HandleFunc("/v2/checkout/orders/ORDER-2/capture", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"ORDER-2","status":"PAYER_ACTION_REQUIRED","purchase_units":[]}`))
	})
	mux.HandleFunc("/v2/checkout/orders/MISSING/capture", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"name":"RESOURCE_NOT_FOUND","message":"The specified resource does not exist."}`))
	})
	return httptest.NewServer(mux)
}

func TestPayPalCreateOrder(t *testing.T) {
	var tokenCalls int32
	srv := newPayPalServer(t, &tokenCalls)
	defer srv.Close()

	client := NewPayPalClient(srv.URL, "client", "secret")
	id, err := client.CreateOrder(context.Background(), "150.00", "USD")
	require.NoError(t, err)
	assert.Equal(t, "5O190127TN364715T", id)

	_, err = client.CreateOrder(context.Background(), "0", "USD")
	var perr *PayPalError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusUnprocessableEntity, perr.StatusCode)
	assert.Equal(t, "The requested action could not be performed.", perr.Message)

	// the access token is fetched once and reused
	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenCalls))
}

func TestPayPalCaptureOrder(t *testing.T) {
	var tokenCalls int32
	srv := newPayPalServer(t, &tokenCalls)
	defer srv.Close()

	client := NewPayPalClient(srv.URL, "client", "secret")
	res, err := client.CaptureOrder(context.Background(), "ORDER-1")
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", res.Status)
	assert.Equal(t, "150.00", res.Amount)

	res, err = client.CaptureOrder(context.Background(), "ORDER-2")
	require.NoError(t, err)
	assert.Equal(t, "PAYER_ACTION_REQUIRED", res.Status)
	assert.Empty(t, res.Amount)

	_, err = client.CaptureOrder(context.Background(), "MISSING")
	var perr *PayPalError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusNotFound, perr.StatusCode)
}

func TestPayPalBadCredentials(t *testing.T) {
	var tokenCalls int32
	srv := newPayPalServer(t, &tokenCalls)
	defer srv.Close()

	client := NewPayPalClient(srv.URL, "client", "wrong")
	_, err := client.CreateOrder(context.Background(), "10", "USD")
	var perr *PayPalError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "Client Authentication failed", perr.Message)
}

func TestPaymentProviderOverride(t *testing.T) {
	defer NewPaymentProvider(nil)
	p := NewPayPalClient("http://localhost", "a", "b")
	NewPaymentProvider(p)
	assert.Same(t, p, GetPaymentProvider())
}
