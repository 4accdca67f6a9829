package services

import (
	"sync"
	"time"

	"topup/utils"
)

// Stage is the client-side lifecycle position of a top-up session.
// Stages only move forward; Terminal is sticky.
type Stage int

const (
	StageIdle Stage = iota
	StageAwaitingScan
	StageAwaitingVerification
	StageTerminal
)

// String returns the stage name for logs and status payloads
func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageAwaitingScan:
		return "awaiting_scan"
	case StageAwaitingVerification:
		return "awaiting_verification"
	case StageTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Status is the normalized backend status of a session. Raw backend strings
// are mapped into this set at the reconciler boundary; nothing downstream
// branches on raw strings.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusFailed  Status = "failed"
	StatusExpired Status = "expired"
	StatusClosed  Status = "closed"
)

// Terminal reports whether the status ends the session.
func (s Status) Terminal() bool {
	switch s {
	case StatusPaid, StatusFailed, StatusExpired, StatusClosed:
		return true
	}
	return false
}

// Provenance tags where a remote status came from, used for precedence.
type Provenance string

const (
	ProvenancePushed Provenance = "pushed"
	ProvenancePolled Provenance = "polled"
)

// RemoteStatus is the last-known authoritative backend status with its
// provenance. A pushed value is never displaced by a polled one.
type RemoteStatus struct {
	Status     Status
	Provenance Provenance
}

// Session is the single top-up payment session. ID and AmountINR are
// immutable once created; ExpiresAt is set once and never re-armed.
type Session struct {
	ID        string
	AmountINR int64
	QRData    string // UPI deep link rendered as the QR code

	Stage   Stage
	Outcome Status // set only when Stage == StageTerminal

	ExpiresAt time.Time
	CreatedAt time.Time

	UTR                 string
	Remote              RemoteStatus
	LinkedTransactionID string
}

// Active reports whether the session occupies the single non-idle slot.
func (s *Session) Active() bool {
	return s.Stage == StageAwaitingScan || s.Stage == StageAwaitingVerification
}

// SessionStore holds the single source of truth for the current session.
// All mutation goes through it; readers get copies.
type SessionStore struct {
	mu  sync.RWMutex
	cur *Session
}

// NewSessionStore creates an empty session store
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Begin installs a new session. It rejects with ErrSessionActive while a
// previous session is still occupying the slot, including a terminal one
// that has not been torn down yet.
func (s *SessionStore) Begin(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur != nil && s.cur.Stage != StageIdle {
		return ErrSessionActive
	}

	sess.Stage = StageAwaitingScan
	s.cur = &sess
	return nil
}

// Snapshot returns a copy of the current session. The second return is
// false while no session exists.
func (s *SessionStore) Snapshot() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cur == nil {
		return Session{}, false
	}
	return *s.cur, true
}

// MarkAwaitingVerification records the submitted reference and advances
// AwaitingScan to AwaitingVerification.
func (s *SessionStore) MarkAwaitingVerification(utr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur == nil {
		return ErrNoActiveSession
	}
	if s.cur.Stage == StageTerminal {
		return ErrSessionTerminal
	}
	if s.cur.Stage != StageAwaitingScan {
		return ErrNoActiveSession
	}

	s.cur.UTR = utr
	s.cur.Stage = StageAwaitingVerification
	return nil
}

// MarkTerminal moves the session to its sticky terminal stage. It reports
// whether this call performed the transition; a second terminal event is a
// no-op so late backend statuses cannot overwrite the recorded outcome.
func (s *SessionStore) MarkTerminal(outcome Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur == nil || s.cur.Stage == StageTerminal {
		return false
	}
	if !outcome.Terminal() {
		return false
	}

	s.cur.Stage = StageTerminal
	s.cur.Outcome = outcome
	s.cur.ExpiresAt = time.Time{}
	return true
}

// ApplyRemote merges an incoming remote status under the provenance
// precedence rule and returns the merged value. Terminal sessions ignore
// further updates.
func (s *SessionStore) ApplyRemote(incoming RemoteStatus) (RemoteStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur == nil || s.cur.Stage == StageTerminal {
		if s.cur != nil {
			return s.cur.Remote, false
		}
		return RemoteStatus{}, false
	}

	merged, changed := MergeRemote(s.cur.Remote, incoming)
	if changed {
		s.cur.Remote = merged
	}
	return merged, changed
}

// LinkTransaction records the ledger transaction id correlated with this
// session. Once set it is never unset or replaced.
func (s *SessionStore) LinkTransaction(txnID string) {
	if txnID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur == nil {
		return
	}
	if s.cur.LinkedTransactionID != "" {
		if s.cur.LinkedTransactionID != txnID {
			utils.Warn("session", "Ignoring conflicting transaction linkage",
				"session_id", s.cur.ID, "linked", s.cur.LinkedTransactionID, "incoming", txnID)
		}
		return
	}
	s.cur.LinkedTransactionID = txnID
}

// Reset releases the slot and returns the store to idle.
func (s *SessionStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = nil
}
