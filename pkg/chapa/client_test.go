package chapa

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestInitialize_ReturnsCheckoutURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/initialize" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Fatalf("unexpected auth header %q", got)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["amount"] != "500" {
			t.Fatalf("expected amount 500, got %v", body["amount"])
		}
		if body["tx_ref"] != "woliso-abc12345" {
			t.Fatalf("unexpected tx_ref %v", body["tx_ref"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"data":   map[string]string{"checkout_url": "https://checkout.chapa.co/pay/xyz"},
		})
	}))
	defer srv.Close()

	c := Client{BaseURL: srv.URL, SecretKey: "sk-test"}
	res, err := c.Initialize(context.Background(), InitializeRequest{
		Amount:   decimal.NewFromInt(500),
		Currency: "ETB",
		TxRef:    "woliso-abc12345",
		Email:    "tenant@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CheckoutURL != "https://checkout.chapa.co/pay/xyz" {
		t.Fatalf("unexpected checkout url %q", res.CheckoutURL)
	}
}

func TestInitialize_GatewayDeclines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "failed", "message": "invalid currency"})
	}))
	defer srv.Close()

	c := Client{BaseURL: srv.URL, SecretKey: "sk-test"}
	_, err := c.Initialize(context.Background(), InitializeRequest{Amount: decimal.NewFromInt(500), Currency: "XXX", TxRef: "woliso-1"})
	if err == nil {
		t.Fatal("expected error")
	}
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %T", err)
	}
	if !strings.Contains(ue.Message, "invalid currency") {
		t.Fatalf("expected gateway message, got %q", ue.Message)
	}
}

func TestVerify_FailedIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/verify/woliso-1" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "failed", "message": "transaction not found"})
	}))
	defer srv.Close()

	c := Client{BaseURL: srv.URL, SecretKey: "sk-test"}
	res, err := c.Verify(context.Background(), "woliso-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Verified {
		t.Fatal("expected unverified result")
	}
}

func TestVerify_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "success", "data": map[string]string{"status": "success"}})
	}))
	defer srv.Close()

	c := Client{BaseURL: srv.URL, SecretKey: "sk-test"}
	res, err := c.Verify(context.Background(), "woliso-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Verified {
		t.Fatal("expected verified result")
	}
}

func TestNewTxRef(t *testing.T) {
	a := NewTxRef("woliso")
	b := NewTxRef("woliso")
	if a == b {
		t.Fatalf("expected unique refs, got %q twice", a)
	}
	if !strings.HasPrefix(a, "woliso-") || len(a) != len("woliso-")+8 {
		t.Fatalf("unexpected ref shape %q", a)
	}
}
