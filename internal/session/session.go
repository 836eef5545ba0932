// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/jeranaias/bankist-tui/internal/account"
	"github.com/jeranaias/bankist-tui/internal/audit"
	"github.com/jeranaias/bankist-tui/internal/tasks"
)

// =============================================================================
// CONFIGURATION
// =============================================================================

// Config holds the session's timing and throttling settings.
type Config struct {
	// Timeout is the inactivity countdown length (default: 10 minutes)
	Timeout time.Duration

	// WarningBefore is how long before expiry the warning shows (default: 1 minute)
	WarningBefore time.Duration

	// LoanDelay is how long an approved loan waits before it is credited (default: 3s)
	LoanDelay time.Duration

	// LoginRate is the sustained login attempts per second per handle (0 = unlimited)
	LoginRate float64

	// LoginBurst is the number of attempts allowed back to back
	LoginBurst int
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:       10 * time.Minute,
		WarningBefore: time.Minute,
		LoanDelay:     3 * time.Second,
		LoginRate:     1,
		LoginBurst:    5,
	}
}

// Option configures a Session.
type Option func(*Session)

// WithScheduler sets the scheduler used for deferred loan credits.
func WithScheduler(s *tasks.Scheduler) Option {
	return func(sess *Session) { sess.sched = s }
}

// WithAuditLogger sets the audit trail.
func WithAuditLogger(l *audit.Logger) Option {
	return func(sess *Session) { sess.audit = l }
}

// WithNow replaces the clock used to timestamp ledger entries.
func WithNow(now func() time.Time) Option {
	return func(sess *Session) { sess.now = now }
}

// =============================================================================
// SESSION
// =============================================================================

// Session is the single logical actor that owns authentication state,
// the expiry timer and pending loans. Every exported method takes the
// same lock, so operations never interleave.
type Session struct {
	mu sync.Mutex

	dir      *account.Directory
	renderer Renderer
	sched    *tasks.Scheduler
	audit    *audit.Logger
	now      func() time.Time
	cfg      Config

	current   *account.Account
	sessionID string
	sorted    bool
	timer     *Timer
	loans     map[string]*PendingLoan
	limiters  map[string]*rate.Limiter
}

// New creates an unauthenticated session over dir.
func New(dir *account.Directory, r Renderer, cfg Config, opts ...Option) *Session {
	if r == nil {
		r = NopRenderer{}
	}
	s := &Session{
		dir:      dir,
		renderer: r,
		now:      time.Now,
		cfg:      cfg,
		timer:    NewTimer(int(cfg.Timeout/time.Second), int(cfg.WarningBefore/time.Second)),
		loans:    make(map[string]*PendingLoan),
		limiters: make(map[string]*rate.Limiter),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sched == nil {
		s.sched = tasks.NewScheduler()
	}
	return s
}

// =============================================================================
// AUTHENTICATION
// =============================================================================

// Login authenticates handle with pin. On failure the current account,
// if any, stays logged in.
func (s *Session) Login(handle string, pin int) (*account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.dir.FindByHandle(handle)

	// Unknown handles share one budget so the limiter map stays bounded
	// by the roster.
	bucket := unknownHandleBucket
	if ok {
		bucket = acct.Handle
	}
	if lim := s.limiterLocked(bucket); lim != nil && !lim.Allow() {
		s.auditFailure(audit.EventLoginFailed, handle, "", ErrLoginThrottled)
		return nil, opErr("login", handle, ErrLoginThrottled)
	}

	if !ok {
		s.auditFailure(audit.EventLoginFailed, handle, "", ErrAccountNotFound)
		return nil, opErr("login", handle, ErrAccountNotFound)
	}
	if !acct.VerifyPIN(pin) {
		s.auditFailure(audit.EventLoginFailed, handle, "", ErrWrongPIN)
		return nil, opErr("login", handle, ErrWrongPIN)
	}

	s.cancelLoansLocked()
	s.current = acct
	s.sessionID = uuid.New().String()
	s.timer.Restart()

	s.audit.Log(audit.Event{
		EventType: audit.EventLogin,
		SessionID: s.sessionID,
		Handle:    acct.Handle,
		Success:   true,
	})

	s.renderer.RenderWelcome(acct)
	s.renderAccountLocked(acct)
	s.renderer.RenderRemainingTime(s.timer.Remaining())
	return acct, nil
}

// Logout ends the session. Calling it while logged out does nothing.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logoutLocked(audit.EventLogout)
}

func (s *Session) logoutLocked(reason audit.EventType) {
	s.timer.Stop()
	if s.current == nil {
		return
	}

	s.cancelLoansLocked()
	s.audit.Log(audit.Event{
		EventType: reason,
		SessionID: s.sessionID,
		Handle:    s.current.Handle,
		Success:   true,
	})
	s.current = nil
	s.sessionID = ""

	s.renderer.RenderLoggedOut()
	s.renderer.RenderWelcome(nil)
}

// unknownHandleBucket keys the login limiter shared by handles that match
// no account. Derived handles are never empty.
const unknownHandleBucket = ""

func (s *Session) limiterLocked(handle string) *rate.Limiter {
	if s.cfg.LoginRate <= 0 {
		return nil
	}
	lim, ok := s.limiters[handle]
	if !ok {
		burst := s.cfg.LoginBurst
		if burst < 1 {
			burst = 1
		}
		lim = rate.NewLimiter(rate.Limit(s.cfg.LoginRate), burst)
		s.limiters[handle] = lim
	}
	return lim
}

// =============================================================================
// TRANSFER
// =============================================================================

// Transfer moves amount from the logged-in account to the account named
// by target. Both ledgers get one entry with the same timestamp, or
// neither changes.
func (s *Session) Transfer(target string, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	src := s.current
	if src == nil {
		return opErr("transfer", target, ErrNotAuthenticated)
	}

	fail := func(err error) error {
		var shown string
		if account.InRange(amount) {
			shown = amount.String()
		}
		s.auditFailure(audit.EventTransferFailed, src.Handle, shown, err, "to", target)
		return opErr("transfer", target, err)
	}

	if !amount.IsPositive() || !account.InRange(amount) {
		return fail(ErrInvalidAmount)
	}
	dst, ok := s.dir.FindByHandle(target)
	if !ok {
		return fail(ErrUnknownTarget)
	}
	if amount.GreaterThan(src.Ledger.Balance()) {
		return fail(ErrInsufficientBalance)
	}
	if dst.Handle == src.Handle {
		return fail(ErrSelfTransfer)
	}

	at := s.now()
	src.Ledger.Append(amount.Neg(), at)
	dst.Ledger.Append(amount, at)
	s.timer.Restart()

	s.audit.Log(audit.Event{
		EventType: audit.EventTransfer,
		SessionID: s.sessionID,
		Handle:    src.Handle,
		Amount:    amount.String(),
		Success:   true,
		Metadata:  map[string]string{"to": dst.Handle},
	})

	s.renderAccountLocked(src)
	s.renderer.RenderRemainingTime(s.timer.Remaining())
	return nil
}

// =============================================================================
// CLOSURE
// =============================================================================

// CloseAccount removes the logged-in account from the directory. handle
// and pin must name that same account.
func (s *Session) CloseAccount(handle string, pin int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct := s.current
	if acct == nil {
		return opErr("close", handle, ErrNotAuthenticated)
	}
	if handle != acct.Handle || !acct.VerifyPIN(pin) {
		s.auditFailure(audit.EventClose, acct.Handle, "", ErrCloseMismatch)
		return opErr("close", handle, ErrCloseMismatch)
	}

	s.cancelLoansLocked()
	s.dir.Remove(acct)
	s.timer.Stop()

	s.audit.Log(audit.Event{
		EventType: audit.EventClose,
		SessionID: s.sessionID,
		Handle:    acct.Handle,
		Amount:    acct.Ledger.Balance().String(),
		Success:   true,
	})
	s.current = nil
	s.sessionID = ""

	s.renderer.RenderLoggedOut()
	s.renderer.RenderWelcome(nil)
	return nil
}

// =============================================================================
// SORT / TIMER
// =============================================================================

// ToggleSort flips the ledger ordering and returns the new value. It does
// not touch the timer and works whether or not anyone is logged in.
func (s *Session) ToggleSort() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sorted = !s.sorted
	if s.current != nil {
		s.renderer.RenderLedger(s.current, s.sorted)
	}
	return s.sorted
}

// Tick advances the expiry countdown by one second. When it reaches zero
// the session is logged out. Ticks while the timer is stopped do nothing.
func (s *Session) Tick() (remaining int, expired bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer.State() != TimerRunning {
		return s.timer.Remaining(), false
	}

	remaining, expired = s.timer.Tick()
	s.renderer.RenderRemainingTime(remaining)
	if expired {
		s.logoutLocked(audit.EventTimeout)
	}
	return remaining, expired
}

// Shutdown stops the timer and drops pending loans without logging out.
// Hosts call it on exit.
func (s *Session) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timer.Stop()
	s.sched.CancelAll()
	s.forgetLoansLocked()
}

// =============================================================================
// STATE
// =============================================================================

// Current returns the logged-in account, or nil.
func (s *Session) Current() *account.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SessionID returns the ID issued at the last successful login, or "".
func (s *Session) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// Sorted returns the current sort flag.
func (s *Session) Sorted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted
}

// Remaining returns the seconds left before expiry.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer.Remaining()
}

// TimerState returns whether the expiry countdown is running.
func (s *Session) TimerState() TimerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer.State()
}

// Warning reports whether expiry is close enough to warn the user.
func (s *Session) Warning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer.Warning()
}

// Refresh re-renders everything for the current state.
func (s *Session) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		s.renderer.RenderWelcome(nil)
		return
	}
	s.renderer.RenderWelcome(s.current)
	s.renderAccountLocked(s.current)
	s.renderer.RenderRemainingTime(s.timer.Remaining())
}

// =============================================================================
// HELPERS
// =============================================================================

func (s *Session) renderAccountLocked(acct *account.Account) {
	s.renderer.RenderLedger(acct, s.sorted)
	s.renderer.RenderBalance(acct)
	s.renderer.RenderSummary(acct)
}

func (s *Session) auditFailure(t audit.EventType, handle, amount string, err error, kv ...string) {
	var md map[string]string
	if len(kv) > 1 {
		md = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			md[kv[i]] = kv[i+1]
		}
	}
	s.audit.Log(audit.Event{
		EventType: t,
		SessionID: s.sessionID,
		Handle:    handle,
		Amount:    amount,
		Success:   false,
		Error:     err.Error(),
		Metadata:  md,
	})
}
