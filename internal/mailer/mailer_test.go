package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"fleetrent/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmailServer(t *testing.T, calls *int64, result Result) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(calls, 1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}))
}

func TestSendStatusUpdateDeclinedWithoutReasonRejectedLocally(t *testing.T) {
	var calls int64
	server := newEmailServer(t, &calls, Result{Success: true})
	defer server.Close()

	m := NewHTTPMailer(server.URL, server.URL, "token")
	_, err := m.SendStatusUpdate(context.Background(), &StatusUpdateEmail{
		CustomerEmail: "jane@example.com",
		CustomerName:  "Jane",
		NewStatus:     "declined",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidArgument))
	assert.Equal(t, int64(0), atomic.LoadInt64(&calls), "no remote call on local validation failure")
}

func TestSendStatusUpdateMissingFieldsRejectedLocally(t *testing.T) {
	var calls int64
	server := newEmailServer(t, &calls, Result{Success: true})
	defer server.Close()

	m := NewHTTPMailer(server.URL, server.URL, "token")
	_, err := m.SendStatusUpdate(context.Background(), &StatusUpdateEmail{
		CustomerName: "Jane",
		NewStatus:    "confirmed",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidArgument))
	assert.Equal(t, int64(0), atomic.LoadInt64(&calls))
}

func TestSendStatusUpdateSuccess(t *testing.T) {
	var calls int64
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		gotAuth = r.Header.Get("Authorization")

		var payload StatusUpdateEmail
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "declined", payload.NewStatus)
		assert.Equal(t, "vehicle unavailable", payload.DeclineReason)

		json.NewEncoder(w).Encode(Result{Success: true})
	}))
	defer server.Close()

	m := NewHTTPMailer(server.URL, server.URL, "secret-token")
	result, err := m.SendStatusUpdate(context.Background(), &StatusUpdateEmail{
		CustomerEmail: "jane@example.com",
		CustomerName:  "Jane",
		NewStatus:     "declined",
		DeclineReason: "vehicle unavailable",
	})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
	assert.Equal(t, "Bearer secret-token", gotAuth)
}

func TestSendStatusUpdateRemoteFailureSurfaced(t *testing.T) {
	var calls int64
	server := newEmailServer(t, &calls, Result{Success: false, Error: "smtp unavailable"})
	defer server.Close()

	m := NewHTTPMailer(server.URL, server.URL, "token")
	result, err := m.SendStatusUpdate(context.Background(), &StatusUpdateEmail{
		CustomerEmail: "jane@example.com",
		CustomerName:  "Jane",
		NewStatus:     "confirmed",
	})

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "smtp unavailable", result.Error)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls), "failure is reported, not retried")
}

func TestSendBookingConfirmationUnauthenticated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(Result{Success: true})
	}))
	defer server.Close()

	m := NewHTTPMailer(server.URL, server.URL, "token")
	result, err := m.SendBookingConfirmation(context.Background(), &BookingConfirmationEmail{
		CustomerEmail: "jane@example.com",
		CustomerName:  "Jane",
	})

	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestSendBookingConfirmationMissingEmail(t *testing.T) {
	var calls int64
	server := newEmailServer(t, &calls, Result{Success: true})
	defer server.Close()

	m := NewHTTPMailer(server.URL, server.URL, "token")
	_, err := m.SendBookingConfirmation(context.Background(), &BookingConfirmationEmail{
		CustomerName: "Jane",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidArgument))
	assert.Equal(t, int64(0), atomic.LoadInt64(&calls))
}
