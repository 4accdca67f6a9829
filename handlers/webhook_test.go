package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"topup/services"
)

func sign(payload, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func postWebhook(t *testing.T, h *WebhookHandlers, payload, signature string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/wallet-webhook", strings.NewReader(payload))
	if signature != "" {
		req.Header.Set("X-Wallet-Signature", signature)
	}
	rec := httptest.NewRecorder()
	h.WalletWebhookHandler(rec, req)
	return rec
}

func TestWalletWebhookHandler(t *testing.T) {
	const secret = "test-webhook-secret"
	t.Setenv("TOPUP_WEBHOOK_SECRET", secret)

	t.Run("dispatches session status events", func(t *testing.T) {
		mc := gomock.NewController(t)
		defer mc.Finish()

		hub := services.NewHub()
		listener := services.NewMockSessionListener(mc)
		hub.Subscribe("qr_1", listener)
		h := NewWebhookHandlers(hub)

		listener.EXPECT().OnStatusEvent(services.StatusEvent{
			SessionID:     "qr_1",
			Status:        "paid",
			AmountINR:     100,
			TransactionID: "txn_7",
		})

		payload := `{"type":"qr.status","data":{"sessionId":"qr_1","status":"paid","amountInr":100,"transactionId":"txn_7"}}`
		if rec := postWebhook(t, h, payload, sign(payload, secret)); rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("broadcasts wallet transaction events", func(t *testing.T) {
		mc := gomock.NewController(t)
		defer mc.Finish()

		hub := services.NewHub()
		listener := services.NewMockSessionListener(mc)
		hub.Subscribe("qr_1", listener)
		h := NewWebhookHandlers(hub)

		listener.EXPECT().OnWalletTransaction(services.WalletTransactionEvent{
			TransactionID: "txn_9",
			Status:        "success",
			AmountINR:     250,
			Description:   "QR topup qr_1",
		})

		payload := `{"type":"wallet.txn","data":{"transactionId":"txn_9","status":"success","amountInr":250,"description":"QR topup qr_1"}}`
		if rec := postWebhook(t, h, payload, sign(payload, secret)); rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("rejects a bad signature", func(t *testing.T) {
		h := NewWebhookHandlers(services.NewHub())
		payload := `{"type":"qr.status","data":{"sessionId":"qr_1","status":"paid"}}`

		if rec := postWebhook(t, h, payload, "deadbeef"); rec.Code != http.StatusBadRequest {
			t.Fatalf("bad signature status = %d, want 400", rec.Code)
		}
		if rec := postWebhook(t, h, payload, ""); rec.Code != http.StatusBadRequest {
			t.Fatalf("missing signature status = %d, want 400", rec.Code)
		}
	})

	t.Run("acks unknown event types", func(t *testing.T) {
		h := NewWebhookHandlers(services.NewHub())
		payload := `{"type":"tournament.update","data":{}}`

		if rec := postWebhook(t, h, payload, sign(payload, secret)); rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	})
}
