package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_ReturnURLDerivedFromPublicBaseURL(t *testing.T) {
	t.Setenv("PUBLIC_BASE_URL", "https://rentals.example.com/")
	t.Setenv("CHAPA_RETURN_URL", "")

	cfg := Load()
	assert.Equal(t, "https://rentals.example.com", cfg.PublicBaseURL)
	assert.Equal(t, "https://rentals.example.com/payment/callback", cfg.Chapa.ReturnURL)
}

func TestLoad_ExplicitReturnURLWins(t *testing.T) {
	t.Setenv("PUBLIC_BASE_URL", "https://rentals.example.com")
	t.Setenv("CHAPA_RETURN_URL", "https://frontend.example.com/payment/callback")

	cfg := Load()
	assert.Equal(t, "https://frontend.example.com/payment/callback", cfg.Chapa.ReturnURL)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PUBLIC_BASE_URL", "")
	t.Setenv("CHAPA_RETURN_URL", "")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("PORT", "")

	cfg := Load()
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "https://api.chapa.co/v1", cfg.Chapa.BaseURL)
	assert.Empty(t, cfg.Chapa.ReturnURL)
	assert.Equal(t, "500", cfg.DepositAmount)
	assert.Equal(t, "ETB", cfg.DepositCurrency)
}
