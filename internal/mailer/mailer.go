// Package mailer invokes the remote email-sending functions on booking
// status changes. Calls are fire-and-forget from the caller's point of
// view; failures are surfaced, never retried.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fleetrent/internal/common"
)

// StatusUpdateEmail is the payload for the authenticated status-change
// email function.
type StatusUpdateEmail struct {
	CustomerEmail  string  `json:"customer_email"`
	CustomerName   string  `json:"customer_name"`
	BookingID      string  `json:"booking_id"`
	Vehicle        string  `json:"vehicle"`
	RentalStart    string  `json:"rental_start_date"`
	RentalEnd      string  `json:"rental_end_date"`
	PickupLocation string  `json:"pickup_location,omitempty"`
	TotalPrice     float64 `json:"total_price"`
	NewStatus      string  `json:"new_status"`
	DeclineReason  string  `json:"decline_reason,omitempty"`
}

// BookingConfirmationEmail is the payload for the unauthenticated
// customer-facing confirmation function.
type BookingConfirmationEmail struct {
	CustomerEmail  string  `json:"customer_email"`
	CustomerName   string  `json:"customer_name"`
	BookingID      string  `json:"booking_id"`
	Vehicle        string  `json:"vehicle"`
	RentalStart    string  `json:"rental_start_date"`
	RentalEnd      string  `json:"rental_end_date"`
	PickupLocation string  `json:"pickup_location,omitempty"`
	TotalPrice     float64 `json:"total_price"`
}

// Result mirrors what the remote functions return.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type Mailer interface {
	SendStatusUpdate(ctx context.Context, email *StatusUpdateEmail) (*Result, error)
	SendBookingConfirmation(ctx context.Context, email *BookingConfirmationEmail) (*Result, error)
}

type httpMailer struct {
	statusUpdateURL string
	confirmationURL string
	serviceToken    string
	httpClient      *http.Client
}

func NewHTTPMailer(statusUpdateURL, confirmationURL, serviceToken string) Mailer {
	return &httpMailer{
		statusUpdateURL: statusUpdateURL,
		confirmationURL: confirmationURL,
		serviceToken:    serviceToken,
		httpClient:      &http.Client{Timeout: 30 * time.Second},
	}
}

// SendStatusUpdate validates the payload locally and posts it to the
// status-update function. A declined status with no reason never
// reaches the network.
func (m *httpMailer) SendStatusUpdate(ctx context.Context, email *StatusUpdateEmail) (*Result, error) {
	if email.CustomerEmail == "" || email.CustomerName == "" || email.NewStatus == "" {
		return nil, fmt.Errorf("customer_email, customer_name and new_status are required: %w", common.ErrInvalidArgument)
	}
	if email.NewStatus == "declined" && email.DeclineReason == "" {
		return nil, fmt.Errorf("decline_reason is required when status is declined: %w", common.ErrInvalidArgument)
	}

	return m.post(ctx, m.statusUpdateURL, email, true)
}

func (m *httpMailer) SendBookingConfirmation(ctx context.Context, email *BookingConfirmationEmail) (*Result, error) {
	if email.CustomerEmail == "" || email.CustomerName == "" {
		return nil, fmt.Errorf("customer_email and customer_name are required: %w", common.ErrInvalidArgument)
	}

	return m.post(ctx, m.confirmationURL, email, false)
}

func (m *httpMailer) post(ctx context.Context, url string, payload interface{}, authenticated bool) (*Result, error) {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+m.serviceToken)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode email response: %w", err)
	}

	if resp.StatusCode >= 400 || !result.Success {
		if result.Error == "" {
			result.Error = fmt.Sprintf("email function returned status %d", resp.StatusCode)
		}
		return &result, nil
	}

	return &result, nil
}
