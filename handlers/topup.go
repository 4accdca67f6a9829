package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"topup/config"
	"topup/services"
	"topup/utils"
)

// TopupHandlers is the HTTP surface over the session controller. The
// controller and store are injected so tests can wire fakes.
type TopupHandlers struct {
	Controller *services.Controller
}

// NewTopupHandlers builds the handler set around a controller.
func NewTopupHandlers(controller *services.Controller) *TopupHandlers {
	return &TopupHandlers{Controller: controller}
}

// sessionView is the JSON shape the UI renders from
type sessionView struct {
	SessionID        string `json:"sessionId,omitempty"`
	Stage            string `json:"stage"`
	Outcome          string `json:"outcome,omitempty"`
	AmountINR        int64  `json:"amountInr,omitempty"`
	UTR              string `json:"utr,omitempty"`
	SecondsRemaining int    `json:"secondsRemaining"`
	Message          string `json:"message"`
	TransactionID    string `json:"transactionId,omitempty"`
}

func buildSessionView(sess services.Session, ok bool) sessionView {
	if !ok {
		return sessionView{Stage: services.StageIdle.String(), Message: "No top-up in progress"}
	}

	view := sessionView{
		SessionID:     sess.ID,
		Stage:         sess.Stage.String(),
		AmountINR:     sess.AmountINR,
		UTR:           sess.UTR,
		TransactionID: sess.LinkedTransactionID,
	}

	if sess.Stage == services.StageTerminal {
		view.Outcome = string(sess.Outcome)
		view.Message = config.OutcomeMessage(string(sess.Outcome))
		return view
	}

	if !sess.ExpiresAt.IsZero() {
		remaining := int(time.Until(sess.ExpiresAt).Seconds())
		if remaining < 0 {
			remaining = 0
		}
		view.SecondsRemaining = remaining
	}
	if sess.Stage == services.StageAwaitingVerification {
		view.Message = config.OutcomeMessage("pending")
	} else {
		view.Message = "Scan the QR code with your UPI app to pay"
	}
	return view
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utils.Error("http", "Error encoding response", "error", err)
	}
}

// writeError maps classified errors onto HTTP statuses and a uniform
// error body the UI can render inline or as a toast.
func writeError(w http.ResponseWriter, err error) {
	var fieldErr *services.FieldError
	if errors.As(err, &fieldErr) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": fieldErr.Message,
			"field": fieldErr.Field,
		})
		return
	}

	status := http.StatusBadGateway
	switch {
	case services.IsConflict(err):
		status = http.StatusConflict
	case services.IsValidation(err):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// StartTopupHandler creates a new QR top-up session for the given amount
func (h *TopupHandlers) StartTopupHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}

	amount, err := strconv.ParseInt(r.FormValue("amount"), 10, 64)
	if err != nil || amount <= 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": "Enter a whole amount in INR",
			"field": "amount",
		})
		return
	}

	sessionID, err := h.Controller.Start(r.Context(), amount)
	if err != nil {
		utils.Warn("http", "Top-up start rejected", "amount_inr", amount, "error", err)
		writeError(w, err)
		return
	}

	sess, ok := h.Controller.Session()
	utils.Info("http", "Top-up started", "session_id", sessionID, "amount_inr", amount)
	writeJSON(w, http.StatusCreated, buildSessionView(sess, ok))
}

// QRImageHandler renders the active session's UPI deep link as a PNG QR
// code, the same way the payer's app expects to scan it.
func (h *TopupHandlers) QRImageHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Controller.Session()
	if !ok || sess.QRData == "" {
		http.Error(w, "no active top-up session", http.StatusNotFound)
		return
	}

	qrPNG, err := qrcode.Encode(sess.QRData, qrcode.Medium, 256)
	if err != nil {
		utils.Error("http", "Error generating QR code", "session_id", sess.ID, "error", err)
		http.Error(w, "error generating QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(qrPNG); err != nil {
		utils.Error("http", "Error writing QR image", "session_id", sess.ID, "error", err)
	}
}

// SubmitUTRHandler submits the user's transaction reference for
// verification. Field errors come back with the field name so the form
// can highlight the input.
func (h *TopupHandlers) SubmitUTRHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}

	if err := h.Controller.SubmitReference(r.Context(), r.FormValue("utr")); err != nil {
		writeError(w, err)
		return
	}

	sess, ok := h.Controller.Session()
	writeJSON(w, http.StatusOK, buildSessionView(sess, ok))
}

// CancelTopupHandler aborts the active session and releases its resources
func (h *TopupHandlers) CancelTopupHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.Controller.Cancel(); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, buildSessionView(services.Session{}, false))
}

// DismissTopupHandler acknowledges a terminal outcome and returns the
// client to idle so a new session can start.
func (h *TopupHandlers) DismissTopupHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.Controller.Teardown()
	writeJSON(w, http.StatusOK, buildSessionView(services.Session{}, false))
}

// TopupStatusHandler returns the current session snapshot
func (h *TopupHandlers) TopupStatusHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Controller.Session()
	writeJSON(w, http.StatusOK, buildSessionView(sess, ok))
}
