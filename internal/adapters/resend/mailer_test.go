package resend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhub/salonhub-api/internal/ports"
)

func TestNewMailer_Validation(t *testing.T) {
	_, err := NewMailer(Config{From: "SalonHub <no-reply@salonhub.app>"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key")

	_, err = NewMailer(Config{APIKey: "re_key"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "from address")
}

func TestMailer_Send(t *testing.T) {
	var got sendRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "msg-123"})
	}))
	defer srv.Close()

	m, err := NewMailer(Config{
		APIKey:   "re_key",
		From:     "SalonHub <no-reply@salonhub.app>",
		Endpoint: srv.URL,
	})
	require.NoError(t, err)

	id, err := m.Send(context.Background(), ports.Email{
		To:      "jo@example.com",
		Subject: "Welcome",
		Text:    "hello",
	})

	require.NoError(t, err)
	assert.Equal(t, "msg-123", id)
	assert.Equal(t, "Bearer re_key", auth)
	assert.Equal(t, []string{"jo@example.com"}, got.To)
	assert.Equal(t, "SalonHub <no-reply@salonhub.app>", got.From)
	assert.Equal(t, "Welcome", got.Subject)
}

func TestMailer_Send_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid to address"}`))
	}))
	defer srv.Close()

	m, err := NewMailer(Config{APIKey: "re_key", From: "x@y.z", Endpoint: srv.URL})
	require.NoError(t, err)

	_, err = m.Send(context.Background(), ports.Email{To: "jo@example.com", Subject: "s"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 422")
	assert.Contains(t, err.Error(), "invalid to address")
}

func TestMailer_Send_MissingRecipient(t *testing.T) {
	m, err := NewMailer(Config{APIKey: "re_key", From: "x@y.z"})
	require.NoError(t, err)

	_, err = m.Send(context.Background(), ports.Email{Subject: "s"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "recipient")
}
