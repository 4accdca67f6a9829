package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"topup/config"
	"topup/services"
	"topup/utils"
)

// walletEvent is the backend's push envelope. Two event families matter
// here: session-scoped status changes and broad ledger transactions.
type walletEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// WebhookHandlers turns verified backend callbacks into push-channel
// events for whoever holds the session topic.
type WebhookHandlers struct {
	Hub *services.Hub
}

// NewWebhookHandlers builds the webhook intake around a push hub.
func NewWebhookHandlers(hub *services.Hub) *WebhookHandlers {
	return &WebhookHandlers{Hub: hub}
}

// WalletWebhookHandler processes wallet backend push callbacks
func (h *WebhookHandlers) WalletWebhookHandler(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		utils.Error("webhook", "Error reading webhook body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	secret := config.GetWebhookSecret()
	if secret == "" {
		utils.Warn("webhook", "Wallet webhook secret not configured")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if !verifySignature(payload, r.Header.Get("X-Wallet-Signature"), secret) {
		utils.Error("webhook", "Signature verification failed")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var event walletEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		utils.Error("webhook", "Error parsing webhook envelope", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	utils.Info("webhook", "Received event", "type", event.Type)

	switch event.Type {
	case "qr.status":
		h.handleStatusEvent(event.Data)
	case "wallet.txn":
		h.handleTransactionEvent(event.Data)
	default:
		utils.Warn("webhook", "Unhandled event type", "type", event.Type)
	}

	// The backend retries on non-2xx; once dispatched we always ack.
	w.WriteHeader(http.StatusOK)
}

func (h *WebhookHandlers) handleStatusEvent(raw json.RawMessage) {
	var ev services.StatusEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		utils.Error("webhook", "Error parsing qr.status event", "error", err)
		return
	}
	if ev.SessionID == "" {
		utils.Warn("webhook", "qr.status event missing session id")
		return
	}

	utils.Debug("webhook", "Session status pushed", "session_id", ev.SessionID, "status", ev.Status)
	h.Hub.PublishStatus(ev)
}

func (h *WebhookHandlers) handleTransactionEvent(raw json.RawMessage) {
	var ev services.WalletTransactionEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		utils.Error("webhook", "Error parsing wallet.txn event", "error", err)
		return
	}

	utils.Debug("webhook", "Wallet transaction pushed",
		"transaction_id", ev.TransactionID, "status", ev.Status,
		"amount_inr", ev.AmountINR, "listeners", h.Hub.ListenerCount())
	h.Hub.PublishTransaction(ev)
}

// verifySignature checks the hex HMAC-SHA256 of the body against the
// shared webhook secret using a constant-time compare.
func verifySignature(payload []byte, signature, secret string) bool {
	if signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
