package chapa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// Client talks to the Chapa payment gateway REST API.
// https://developer.chapa.co — only transaction initialize/verify are used here.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	SecretKey  string
}

type InitializeRequest struct {
	Amount    decimal.Decimal
	Currency  string
	TxRef     string
	ReturnURL string
	Email     string
	FirstName string
	LastName  string
}

type InitializeResult struct {
	CheckoutURL string
	TxRef       string
}

type VerifyResult struct {
	Verified bool
	Message  string
}

// envelope is Chapa's common response shape: {"status": "...", "message": "...", "data": {...}}.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("chapa: %s (status=%d)", e.Message, e.StatusCode)
	}
	return "chapa: " + e.Message
}

func (c Client) Initialize(ctx context.Context, req InitializeRequest) (*InitializeResult, error) {
	payload := map[string]any{
		"amount":     req.Amount.String(),
		"currency":   req.Currency,
		"tx_ref":     req.TxRef,
		"return_url": req.ReturnURL,
		"email":      req.Email,
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"customization": map[string]string{
			"title":       "Woliso Rentals Deposit",
			"description": "Deposit payment for an approved booking",
		},
	}

	var env envelope
	if err := c.doJSON(ctx, http.MethodPost, "/transaction/initialize", payload, &env); err != nil {
		return nil, err
	}
	if env.Status != "success" {
		return nil, &UpstreamError{Message: nonEmpty(env.Message, "payment initialization failed")}
	}

	var data struct {
		CheckoutURL string `json:"checkout_url"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.CheckoutURL == "" {
		return nil, &UpstreamError{Message: "missing checkout_url in gateway response"}
	}
	return &InitializeResult{CheckoutURL: data.CheckoutURL, TxRef: req.TxRef}, nil
}

// Verify asks the gateway whether the transaction behind txRef completed.
// A gateway-side "failed" is not an error: it reports Verified=false.
func (c Client) Verify(ctx context.Context, txRef string) (*VerifyResult, error) {
	var env envelope
	if err := c.doJSON(ctx, http.MethodGet, "/transaction/verify/"+txRef, nil, &env); err != nil {
		return nil, err
	}
	if env.Status != "success" {
		return &VerifyResult{Verified: false, Message: nonEmpty(env.Message, "verification failed")}, nil
	}
	return &VerifyResult{Verified: true}, nil
}

func (c Client) doJSON(ctx context.Context, method, path string, reqBody any, respBody any) error {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if c.SecretKey == "" {
		return &UpstreamError{Message: "missing secret key"}
	}

	var buf bytes.Buffer
	if reqBody != nil {
		if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &UpstreamError{Message: err.Error()}
	}
	defer resp.Body.Close()

	b, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return &UpstreamError{StatusCode: resp.StatusCode, Message: readErr.Error()}
	}

	// Surface the gateway's error body for non-2xx so callers can see the reason.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := fmt.Sprintf("gateway error: status=%d", resp.StatusCode)
		if len(b) > 0 {
			msg = fmt.Sprintf("gateway error: status=%d body=%s", resp.StatusCode, string(b))
		}
		return &UpstreamError{StatusCode: resp.StatusCode, Message: msg}
	}

	if respBody != nil && len(b) > 0 {
		if err := json.Unmarshal(b, respBody); err != nil {
			return &UpstreamError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("decode gateway response failed: %v", err)}
		}
	}
	return nil
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
