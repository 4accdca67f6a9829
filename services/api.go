package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"topup/utils"
)

// CreateSessionResult is the backend's answer to a session create call.
type CreateSessionResult struct {
	SessionID           string    `json:"sessionId"`
	QRData              string    `json:"qrData"`
	ExpiresAt           time.Time `json:"expiresAt,omitempty"`
	LinkedTransactionID string    `json:"transactionId,omitempty"`
}

// SessionStatusResult is the pollable status of a session.
type SessionStatusResult struct {
	Status              string     `json:"status"`
	AmountINR           int64      `json:"amountInr"`
	LinkedTransactionID string     `json:"transactionId,omitempty"`
	PaidAt              *time.Time `json:"paidAt,omitempty"`
}

// WalletAPI is the wallet backend consumed by the controller. Transport,
// auth and retries live behind it; it returns typed results or classified
// errors.
type WalletAPI interface {
	CreateSession(ctx context.Context, amountINR int64) (CreateSessionResult, error)
	ConfirmSession(ctx context.Context, sessionID, utr string) (bool, error)
	SessionStatus(ctx context.Context, sessionID string) (SessionStatusResult, error)
	CloseSession(ctx context.Context, sessionID string) error
}

// BalanceRefresher resynchronizes the separately-maintained wallet
// balance after a successful top-up.
type BalanceRefresher interface {
	RefreshBalance(ctx context.Context) error
}

// apiErrorBody is the backend's error envelope
type apiErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WalletClient talks to the platform wallet API over HTTP.
type WalletClient struct {
	http *resty.Client
}

// NewWalletClient builds a client against baseURL authenticated with apiKey.
func NewWalletClient(baseURL, apiKey string) *WalletClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}

	return &WalletClient{http: client}
}

// classify maps a transport failure or non-2xx response onto an APIError.
func classify(resp *resty.Response, err error, body *apiErrorBody) error {
	if err != nil {
		return &APIError{Kind: KindTransient, Message: err.Error()}
	}
	if resp.IsSuccess() {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode(), Message: resp.Status()}
	if body != nil {
		if body.Code != "" {
			apiErr.Code = body.Code
		}
		if body.Message != "" {
			apiErr.Message = body.Message
		}
	}

	switch {
	case resp.StatusCode() == 409:
		apiErr.Kind = KindConflict
	case resp.StatusCode() >= 400 && resp.StatusCode() < 500:
		apiErr.Kind = KindValidation
	default:
		apiErr.Kind = KindServer
	}
	return apiErr
}

// CreateSession requests a new QR top-up session. Each invocation carries
// a fresh idempotency key so a retried HTTP request cannot open two
// backend sessions.
func (c *WalletClient) CreateSession(ctx context.Context, amountINR int64) (CreateSessionResult, error) {
	var result CreateSessionResult
	var errBody apiErrorBody

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Idempotency-Key", uuid.NewString()).
		SetBody(map[string]int64{"amountInr": amountINR}).
		SetResult(&result).
		SetError(&errBody).
		Post("/wallet/topup/sessions")
	if cErr := classify(resp, err, &errBody); cErr != nil {
		return CreateSessionResult{}, fmt.Errorf("create topup session: %w", cErr)
	}

	utils.Debug("api", "Created topup session", "session_id", result.SessionID, "amount_inr", amountINR)
	return result, nil
}

// ConfirmSession submits the user's UTR for verification. The returned
// bool distinguishes immediately-accepted from acknowledged-as-pending;
// either way verification has been handed off.
func (c *WalletClient) ConfirmSession(ctx context.Context, sessionID, utr string) (bool, error) {
	var result struct {
		Accepted bool `json:"accepted"`
	}
	var errBody apiErrorBody

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"utr": utr}).
		SetResult(&result).
		SetError(&errBody).
		Post("/wallet/topup/sessions/" + sessionID + "/confirm")
	if cErr := classify(resp, err, &errBody); cErr != nil {
		// Duplicate or malformed UTR comes back as a field error so the
		// user can correct and resubmit without losing the session.
		var apiErr *APIError
		if errors.As(cErr, &apiErr) && (apiErr.Code == "duplicate_utr" || apiErr.Code == "invalid_utr") {
			return false, &FieldError{Field: "utr", Message: apiErr.Message}
		}
		return false, fmt.Errorf("confirm topup session %s: %w", sessionID, cErr)
	}

	return result.Accepted, nil
}

// SessionStatus fetches the current backend status; used only as the poll
// fallback while no push update has landed.
func (c *WalletClient) SessionStatus(ctx context.Context, sessionID string) (SessionStatusResult, error) {
	var result SessionStatusResult
	var errBody apiErrorBody

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		SetError(&errBody).
		Get("/wallet/topup/sessions/" + sessionID)
	if cErr := classify(resp, err, &errBody); cErr != nil {
		return SessionStatusResult{}, fmt.Errorf("topup session status %s: %w", sessionID, cErr)
	}

	return result, nil
}

// CloseSession tells the backend to release the session. Best effort;
// callers treat failures as log-only.
func (c *WalletClient) CloseSession(ctx context.Context, sessionID string) error {
	var errBody apiErrorBody

	resp, err := c.http.R().
		SetContext(ctx).
		SetError(&errBody).
		Post("/wallet/topup/sessions/" + sessionID + "/close")
	if cErr := classify(resp, err, &errBody); cErr != nil {
		return fmt.Errorf("close topup session %s: %w", sessionID, cErr)
	}

	return nil
}

// RefreshBalance asks the backend to recompute the wallet balance figure
// after a credit has landed.
func (c *WalletClient) RefreshBalance(ctx context.Context) error {
	var errBody apiErrorBody

	resp, err := c.http.R().
		SetContext(ctx).
		SetError(&errBody).
		Post("/wallet/balance/refresh")
	if cErr := classify(resp, err, &errBody); cErr != nil {
		return fmt.Errorf("refresh balance: %w", cErr)
	}

	return nil
}
