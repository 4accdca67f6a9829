package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"topup/utils"
)

// Controller orchestrates the top-up session lifecycle: creation, the
// subscribe/poll decision, reference submission, expiry and teardown. It
// is the only writer of the session store; the UI and the push hub only
// read snapshots or feed events in.
type Controller struct {
	store   *SessionStore
	api     WalletAPI
	push    PushChannel
	balance BalanceRefresher

	now          func() time.Time
	minAmountINR int64
	sessionTTL   time.Duration
	pollInterval time.Duration
	tickInterval time.Duration

	mu         sync.Mutex
	starting   bool
	submitting bool
	timer      *ExpiryTimer
	cleanup    *Cleanup
}

// ControllerOptions wires the controller's collaborators. Balance is
// notified once when a session ends paid; Now is injectable for tests.
type ControllerOptions struct {
	Store   *SessionStore
	API     WalletAPI
	Push    PushChannel
	Balance BalanceRefresher

	MinAmountINR int64
	SessionTTL   time.Duration
	PollInterval time.Duration
	TickInterval time.Duration
	Now          func() time.Time
}

// NewController creates a controller with sane defaults for any timing
// option left zero.
func NewController(opts ControllerOptions) *Controller {
	c := &Controller{
		store:        opts.Store,
		api:          opts.API,
		push:         opts.Push,
		balance:      opts.Balance,
		now:          opts.Now,
		minAmountINR: opts.MinAmountINR,
		sessionTTL:   opts.SessionTTL,
		pollInterval: opts.PollInterval,
		tickInterval: opts.TickInterval,
	}

	if c.store == nil {
		c.store = NewSessionStore()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.sessionTTL <= 0 {
		c.sessionTTL = 600 * time.Second
	}
	if c.pollInterval <= 0 {
		c.pollInterval = 5 * time.Second
	}
	if c.tickInterval <= 0 {
		c.tickInterval = time.Second
	}

	return c
}

// Session returns a snapshot of the current session for rendering.
func (c *Controller) Session() (Session, bool) {
	return c.store.Snapshot()
}

// Start creates a new top-up session. It rejects while any session is
// non-idle or a create request is still in flight, so exactly one
// outbound create call happens per accepted invocation.
func (c *Controller) Start(ctx context.Context, amountINR int64) (string, error) {
	if amountINR < c.minAmountINR {
		return "", &FieldError{
			Field:   "amount",
			Message: fmt.Sprintf("Minimum top-up amount is %d INR", c.minAmountINR),
		}
	}

	c.mu.Lock()
	if c.starting {
		c.mu.Unlock()
		return "", ErrRequestInFlight
	}
	if sess, ok := c.store.Snapshot(); ok && sess.Stage != StageIdle {
		c.mu.Unlock()
		return "", ErrSessionActive
	}
	c.starting = true
	c.mu.Unlock()

	result, err := c.api.CreateSession(ctx, amountINR)
	if err != nil {
		c.mu.Lock()
		c.starting = false
		c.mu.Unlock()
		utils.Error("topup", "Session creation failed", "amount_inr", amountINR, "error", err)
		return "", err
	}

	expiresAt := result.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = c.now().Add(c.sessionTTL)
	}

	sess := Session{
		ID:                  result.SessionID,
		AmountINR:           amountINR,
		QRData:              result.QRData,
		ExpiresAt:           expiresAt,
		CreatedAt:           c.now(),
		LinkedTransactionID: result.LinkedTransactionID,
	}

	c.mu.Lock()
	if err := c.store.Begin(sess); err != nil {
		c.starting = false
		c.mu.Unlock()
		// A competing start won the slot while our create was in flight;
		// release the orphaned backend session.
		go c.closeRemote(result.SessionID)
		return "", err
	}

	// Subscribe before the cleanup handle becomes visible: a cancel racing
	// this start must find the subscription its release will drop.
	timer := NewExpiryTimer(c.tickInterval)
	pollStop := make(chan struct{})
	c.push.Subscribe(result.SessionID, c)
	c.timer = timer
	c.cleanup = NewCleanup(c.buildRelease(result.SessionID, pollStop))
	c.starting = false
	c.mu.Unlock()

	if err := timer.Arm(c.handleTick); err != nil {
		utils.Error("topup", "Failed to arm expiry timer", "session_id", result.SessionID, "error", err)
	}
	go c.pollLoop(result.SessionID, pollStop)

	utils.Info("topup", "Session started",
		"session_id", result.SessionID, "amount_inr", amountINR, "expires_at", expiresAt)
	return result.SessionID, nil
}

// SubmitReference validates and submits the user-entered UTR. A field or
// transient failure leaves the session in AwaitingScan for a retry; on a
// successful hand-off the stage advances to AwaitingVerification whether
// the backend accepted immediately or merely acknowledged as pending.
func (c *Controller) SubmitReference(ctx context.Context, rawUTR string) error {
	utr, err := NormalizeUTR(rawUTR)
	if err != nil {
		return err
	}

	c.mu.Lock()
	sess, ok := c.store.Snapshot()
	switch {
	case !ok || sess.Stage == StageIdle:
		c.mu.Unlock()
		return ErrNoActiveSession
	case sess.Stage == StageTerminal:
		c.mu.Unlock()
		return ErrSessionTerminal
	case sess.Stage != StageAwaitingScan:
		c.mu.Unlock()
		return ErrVerificationPending
	case c.submitting:
		c.mu.Unlock()
		return ErrRequestInFlight
	}
	c.submitting = true
	c.mu.Unlock()

	accepted, err := c.api.ConfirmSession(ctx, sess.ID, utr)

	c.mu.Lock()
	c.submitting = false
	c.mu.Unlock()

	if err != nil {
		utils.Warn("topup", "Reference submission failed", "session_id", sess.ID, "error", err)
		return err
	}

	// Acknowledged-as-pending still means verification is handed off.
	if err := c.store.MarkAwaitingVerification(utr); err != nil {
		return err
	}

	utils.Info("topup", "Reference submitted",
		"session_id", sess.ID, "accepted", accepted)
	return nil
}

// Cancel aborts the active session. The remote close is best effort; the
// local transition back to idle never waits on it.
func (c *Controller) Cancel() error {
	sess, ok := c.store.Snapshot()
	if !ok || sess.Stage == StageIdle {
		return ErrNoActiveSession
	}
	if sess.Stage == StageTerminal {
		return ErrSessionTerminal
	}

	c.release()
	c.store.Reset()
	utils.Info("topup", "Session cancelled", "session_id", sess.ID)
	return nil
}

// Teardown releases session resources when the owning view goes away. It
// is safe to call at any time and in any stage, including after a
// terminal outcome has been acknowledged.
func (c *Controller) Teardown() {
	c.release()
	c.store.Reset()
}

// release cancels the timer and runs the once-guarded cleanup. It must
// not be called while holding c.mu: a tick in flight needs the store and
// the cleanup handles, and the timer cancel waits for that tick.
func (c *Controller) release() {
	c.mu.Lock()
	timer, cleanup := c.timer, c.cleanup
	c.timer, c.cleanup = nil, nil
	c.mu.Unlock()

	if timer != nil {
		timer.Cancel()
	}
	if cleanup != nil {
		cleanup.Run()
	}
}

// buildRelease constructs the per-session release routine run by the
// cleanup coordinator: stop polling, drop the push subscription, tell the
// backend to close the session.
func (c *Controller) buildRelease(sessionID string, pollStop chan struct{}) func() {
	return func() {
		close(pollStop)
		c.push.Unsubscribe(sessionID)
		// Fire and forget: local teardown never waits on the backend.
		go c.closeRemote(sessionID)
	}
}

func (c *Controller) closeRemote(sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.api.CloseSession(ctx, sessionID); err != nil {
		// Cleanup must not block the UI; the backend expires the session
		// on its own schedule if this call is lost.
		utils.Warn("topup", "Best-effort session close failed", "session_id", sessionID, "error", err)
	}
}

// OnStatusEvent receives a pushed status update for the session topic.
func (c *Controller) OnStatusEvent(ev StatusEvent) {
	sess, ok := c.store.Snapshot()
	if !ok || ev.SessionID != sess.ID {
		return
	}

	status, known := NormalizeStatus(ev.Status)
	if !known {
		utils.Warn("push", "Ignoring unknown session status", "session_id", ev.SessionID, "raw_status", ev.Status)
		return
	}

	c.store.LinkTransaction(ev.TransactionID)
	c.applyRemote(status, ProvenancePushed)
}

// OnWalletTransaction receives a broad ledger event and correlates it
// against the current session.
func (c *Controller) OnWalletTransaction(ev WalletTransactionEvent) {
	sess, ok := c.store.Snapshot()
	if !ok {
		return
	}

	basis := CorrelateWalletEvent(sess, ev)
	if basis == CorrelateNone {
		utils.Debug("push", "Wallet transaction event did not match session",
			"session_id", sess.ID, "transaction_id", ev.TransactionID)
		return
	}
	if basis == CorrelateAmount {
		utils.Warn("push", "Matched wallet transaction by amount only",
			"session_id", sess.ID, "transaction_id", ev.TransactionID, "amount_inr", ev.AmountINR)
	}

	status, known := NormalizeStatus(ev.Status)
	if !known {
		utils.Warn("push", "Ignoring unknown wallet transaction status",
			"transaction_id", ev.TransactionID, "raw_status", ev.Status)
		return
	}

	c.store.LinkTransaction(ev.TransactionID)
	c.applyRemote(status, ProvenancePushed)
}

// applyRemote merges a normalized status under the provenance rule and
// drives the terminal transition when the merged status ends the session.
func (c *Controller) applyRemote(status Status, prov Provenance) {
	merged, changed := c.store.ApplyRemote(RemoteStatus{Status: status, Provenance: prov})
	if !changed || !merged.Status.Terminal() {
		return
	}
	c.finish(merged.Status, true)
}

// finish performs the sticky terminal transition exactly once and runs
// cleanup. cancelTimer is false on the expiry path, where the tick stops
// its own timer by returning.
func (c *Controller) finish(outcome Status, cancelTimer bool) {
	if !c.store.MarkTerminal(outcome) {
		return
	}

	c.mu.Lock()
	timer, cleanup := c.timer, c.cleanup
	c.timer, c.cleanup = nil, nil
	c.mu.Unlock()

	if cancelTimer && timer != nil {
		timer.Cancel()
	}
	if cleanup != nil {
		cleanup.Run()
	}

	utils.Info("topup", "Session reached terminal outcome", "outcome", string(outcome))

	if outcome == StatusPaid && c.balance != nil {
		go c.refreshBalance()
	}
}

// refreshBalance resynchronizes the separately-maintained wallet balance
// figure after a credit lands. Failures only cost a stale display.
func (c *Controller) refreshBalance() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := c.balance.RefreshBalance(ctx); err != nil {
		utils.Warn("wallet", "Balance refresh failed", "error", err)
	}
}

// handleTick is the expiry timer callback. Remaining time is computed
// from the stored absolute deadline each tick, so suspended execution
// cannot stretch the session lifetime. Returning true stops the timer.
func (c *Controller) handleTick() bool {
	sess, ok := c.store.Snapshot()
	if !ok || !sess.Active() {
		return true
	}
	if sess.ExpiresAt.IsZero() || c.now().Before(sess.ExpiresAt) {
		return false
	}

	// Client-declared timeout: the deadline is authoritative for UX even
	// though the backend expires independently. Cleanup fires the remote
	// close without waiting for server confirmation.
	utils.Info("topup", "Session deadline passed", "session_id", sess.ID)
	c.finish(StatusExpired, false)
	return true
}

// pollLoop fetches backend status while no pushed update has landed.
// Push makes polling redundant; the loop exits as soon as provenance
// flips, and the reconciler suppresses any poll result already in flight.
func (c *Controller) pollLoop(sessionID string, stop chan struct{}) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			sess, ok := c.store.Snapshot()
			if !ok || sess.ID != sessionID || !sess.Active() {
				return
			}
			if sess.Remote.Provenance == ProvenancePushed {
				return
			}

			ctx, cancel := context.WithTimeout(context.Background(), c.pollInterval)
			result, err := c.api.SessionStatus(ctx, sessionID)
			cancel()
			if err != nil {
				// Background reconciliation errors are reported, never
				// propagated; the next tick retries.
				if IsTransient(err) {
					utils.Debug("topup", "Status poll failed; retrying", "session_id", sessionID, "error", err)
				} else {
					utils.Warn("topup", "Status poll failed", "session_id", sessionID, "error", err)
				}
				continue
			}

			status, known := NormalizeStatus(result.Status)
			if !known {
				utils.Warn("topup", "Ignoring unknown polled status",
					"session_id", sessionID, "raw_status", result.Status)
				continue
			}

			c.store.LinkTransaction(result.LinkedTransactionID)
			c.applyRemote(status, ProvenancePolled)
		}
	}
}
