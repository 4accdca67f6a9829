package services

import (
	"sync"

	"topup/utils"
)

// StatusEvent is a server-initiated status change for a specific session.
type StatusEvent struct {
	SessionID     string `json:"sessionId"`
	Status        string `json:"status"`
	AmountINR     int64  `json:"amountInr,omitempty"`
	TransactionID string `json:"transactionId,omitempty"`
}

// SessionListener receives push events for one session topic. Broad
// wallet-transaction events are delivered to every listener because they
// are not keyed by session id.
type SessionListener interface {
	OnStatusEvent(ev StatusEvent)
	OnWalletTransaction(ev WalletTransactionEvent)
}

// PushChannel is the session-scoped view of the shared push
// infrastructure. Subscriptions are tied to session lifetime, not process
// lifetime; every exit path must unsubscribe.
type PushChannel interface {
	Subscribe(sessionID string, l SessionListener)
	Unsubscribe(sessionID string)
}

// Hub fans backend push events out to session-scoped listeners. The
// connection that feeds it (webhook intake here, a shared socket in other
// deployments) is owned elsewhere.
type Hub struct {
	mu        sync.RWMutex
	listeners map[string]SessionListener
}

// NewHub creates an empty push hub
func NewHub() *Hub {
	return &Hub{listeners: make(map[string]SessionListener)}
}

// Subscribe registers a listener for one session topic, replacing any
// previous listener for the same session.
func (h *Hub) Subscribe(sessionID string, l SessionListener) {
	h.mu.Lock()
	h.listeners[sessionID] = l
	h.mu.Unlock()

	utils.Debug("push", "Subscribed to session topic", "session_id", sessionID)
}

// Unsubscribe drops the listener for a session topic.
func (h *Hub) Unsubscribe(sessionID string) {
	h.mu.Lock()
	_, existed := h.listeners[sessionID]
	delete(h.listeners, sessionID)
	h.mu.Unlock()

	if existed {
		utils.Debug("push", "Unsubscribed from session topic", "session_id", sessionID)
	}
}

// PublishStatus routes a session status event to its topic listener.
func (h *Hub) PublishStatus(ev StatusEvent) {
	h.mu.RLock()
	l, exists := h.listeners[ev.SessionID]
	h.mu.RUnlock()

	if !exists {
		utils.Debug("push", "No listener for session status event", "session_id", ev.SessionID, "status", ev.Status)
		return
	}

	l.OnStatusEvent(ev)
}

// PublishTransaction delivers a broad wallet-transaction event to all
// listeners; each listener correlates it against its own session.
func (h *Hub) PublishTransaction(ev WalletTransactionEvent) {
	h.mu.RLock()
	listeners := make([]SessionListener, 0, len(h.listeners))
	for _, l := range h.listeners {
		listeners = append(listeners, l)
	}
	h.mu.RUnlock()

	for _, l := range listeners {
		l.OnWalletTransaction(ev)
	}
}

// ListenerCount returns the number of active session subscriptions.
func (h *Hub) ListenerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}
