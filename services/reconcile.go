package services

import "strings"

// MergeRemote applies the provenance precedence rule: a pushed update
// always replaces the current value, a polled update only counts while no
// pushed update has ever been recorded. The rule is order-independent, so
// a polled result arriving after a push cannot regress the status.
func MergeRemote(current, incoming RemoteStatus) (RemoteStatus, bool) {
	if incoming.Provenance == ProvenancePushed {
		return incoming, true
	}

	if current.Provenance == ProvenancePushed {
		return current, false
	}

	return incoming, true
}

// NormalizeStatus maps the raw status strings the backend uses
// inconsistently across endpoints ("paid"/"success", "fail"/"failed",
// "expired"/"closed") onto the one internal Status set. Unknown strings
// are reported rather than guessed at.
func NormalizeStatus(raw string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "paid", "success", "successful", "completed":
		return StatusPaid, true
	case "fail", "failed", "rejected":
		return StatusFailed, true
	case "expired", "timeout":
		return StatusExpired, true
	case "closed", "cancelled", "canceled":
		return StatusClosed, true
	case "pending", "created", "active", "processing":
		return StatusPending, true
	default:
		return "", false
	}
}

// WalletTransactionEvent is a broad ledger event from the push channel.
// Unlike session status events it is not keyed by session id, so it has
// to be correlated heuristically.
type WalletTransactionEvent struct {
	TransactionID string `json:"transactionId"`
	SessionID     string `json:"sessionId,omitempty"`
	Status        string `json:"status"`
	AmountINR     int64  `json:"amountInr"`
	Description   string `json:"description,omitempty"`
}

// CorrelationBasis records which rule matched a wallet-transaction event
// to the session. Amount-only is a last-resort heuristic and callers
// should flag it in logs.
type CorrelationBasis int

const (
	CorrelateNone CorrelationBasis = iota
	CorrelateTransactionID
	CorrelateSessionID
	CorrelateDescription
	CorrelateAmount
)

// CorrelateWalletEvent decides whether ev belongs to sess. Identifier
// linkage is always preferred; amount equality is only consulted while the
// session is awaiting verification, and only because at most one non-idle
// session exists per actor. Do not widen this rule.
func CorrelateWalletEvent(sess Session, ev WalletTransactionEvent) CorrelationBasis {
	if sess.LinkedTransactionID != "" && ev.TransactionID == sess.LinkedTransactionID {
		return CorrelateTransactionID
	}

	if ev.SessionID != "" && ev.SessionID == sess.ID {
		return CorrelateSessionID
	}

	if sess.ID != "" && strings.Contains(ev.Description, sess.ID) {
		return CorrelateDescription
	}

	if sess.Stage == StageAwaitingVerification && ev.AmountINR > 0 && ev.AmountINR == sess.AmountINR {
		return CorrelateAmount
	}

	return CorrelateNone
}
