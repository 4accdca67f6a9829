package services

import (
	"errors"
	"testing"
	"time"
)

func newScanSession(t *testing.T) *SessionStore {
	t.Helper()
	store := NewSessionStore()
	err := store.Begin(Session{
		ID:        "qr_1",
		AmountINR: 100,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	})
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	return store
}

func TestSessionStoreSingleSession(t *testing.T) {
	store := newScanSession(t)

	if err := store.Begin(Session{ID: "qr_2", AmountINR: 50}); !errors.Is(err, ErrSessionActive) {
		t.Fatalf("expected ErrSessionActive, got %v", err)
	}

	sess, ok := store.Snapshot()
	if !ok || sess.ID != "qr_1" || sess.AmountINR != 100 {
		t.Fatalf("existing session was mutated by rejected Begin: %+v", sess)
	}

	// a terminal session still occupies the slot until torn down
	store.MarkTerminal(StatusPaid)
	if err := store.Begin(Session{ID: "qr_3"}); !errors.Is(err, ErrSessionActive) {
		t.Fatalf("expected ErrSessionActive for an undismissed terminal session, got %v", err)
	}

	store.Reset()
	if err := store.Begin(Session{ID: "qr_3", AmountINR: 50}); err != nil {
		t.Fatalf("Begin after Reset: %v", err)
	}
}

func TestSessionStoreForwardOnly(t *testing.T) {
	store := newScanSession(t)

	if err := store.MarkAwaitingVerification("UTR12345"); err != nil {
		t.Fatalf("MarkAwaitingVerification: %v", err)
	}
	sess, _ := store.Snapshot()
	if sess.Stage != StageAwaitingVerification || sess.UTR != "UTR12345" {
		t.Fatalf("unexpected session after submission: %+v", sess)
	}

	// a second submission cannot re-enter AwaitingVerification
	if err := store.MarkAwaitingVerification("OTHER123"); err == nil {
		t.Fatal("expected error re-submitting from AwaitingVerification")
	}
	sess, _ = store.Snapshot()
	if sess.UTR != "UTR12345" {
		t.Fatalf("stored UTR changed on rejected submission: %q", sess.UTR)
	}
}

func TestSessionStoreStickyTerminal(t *testing.T) {
	store := newScanSession(t)

	if !store.MarkTerminal(StatusExpired) {
		t.Fatal("first terminal transition should succeed")
	}
	if store.MarkTerminal(StatusPaid) {
		t.Fatal("second terminal transition must be a no-op")
	}

	sess, _ := store.Snapshot()
	if sess.Stage != StageTerminal || sess.Outcome != StatusExpired {
		t.Fatalf("terminal outcome was overwritten: %+v", sess)
	}
	if !sess.ExpiresAt.IsZero() {
		t.Fatal("ExpiresAt should be cleared on terminal transition")
	}

	if err := store.MarkAwaitingVerification("UTR12345"); !errors.Is(err, ErrSessionTerminal) {
		t.Fatalf("expected ErrSessionTerminal, got %v", err)
	}

	// remote updates after terminal are ignored
	if _, changed := store.ApplyRemote(RemoteStatus{Status: StatusPaid, Provenance: ProvenancePushed}); changed {
		t.Fatal("remote update applied to a terminal session")
	}
}

func TestSessionStoreTransactionLinkage(t *testing.T) {
	store := newScanSession(t)

	store.LinkTransaction("")
	if sess, _ := store.Snapshot(); sess.LinkedTransactionID != "" {
		t.Fatal("empty linkage should be ignored")
	}

	store.LinkTransaction("txn_1")
	store.LinkTransaction("txn_2")
	sess, _ := store.Snapshot()
	if sess.LinkedTransactionID != "txn_1" {
		t.Fatalf("linked transaction must never be replaced, got %q", sess.LinkedTransactionID)
	}
}

func TestSessionStoreApplyRemotePrecedence(t *testing.T) {
	store := newScanSession(t)

	merged, changed := store.ApplyRemote(RemoteStatus{Status: StatusPending, Provenance: ProvenancePolled})
	if !changed || merged.Status != StatusPending {
		t.Fatalf("polled pending should apply first, got %+v", merged)
	}

	merged, changed = store.ApplyRemote(RemoteStatus{Status: StatusFailed, Provenance: ProvenancePushed})
	if !changed || merged.Status != StatusFailed {
		t.Fatalf("pushed failed should replace polled pending, got %+v", merged)
	}

	merged, changed = store.ApplyRemote(RemoteStatus{Status: StatusPaid, Provenance: ProvenancePolled})
	if changed || merged.Status != StatusFailed {
		t.Fatalf("polled value regressed a pushed status: %+v", merged)
	}
}
