// Package notify holds the single transient status message of a page.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind categorizes a notice for styling.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
)

// DefaultTTL is how long a notice stays visible.
const DefaultTTL = 3 * time.Second

// Notice is one status message.
type Notice struct {
	ID        string
	Kind      Kind
	Text      string
	ShownAt   time.Time
	ExpiresAt time.Time
}

// Timer is the part of *time.Timer the presenter uses.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run after d.
type AfterFunc func(d time.Duration, f func()) Timer

// Option configures a Presenter.
type Option func(*Presenter)

// WithAfterFunc replaces the timer source.
func WithAfterFunc(after AfterFunc) Option {
	return func(p *Presenter) {
		p.after = after
	}
}

// WithClock replaces the wall clock used for ShownAt and ExpiresAt.
func WithClock(now func() time.Time) Option {
	return func(p *Presenter) {
		p.now = now
	}
}

// WithOnChange registers a hook called after a notice is shown or dismissed.
// It runs without the presenter's lock held.
func WithOnChange(fn func()) Option {
	return func(p *Presenter) {
		p.onChange = fn
	}
}

// Presenter shows one notice at a time. Showing a notice replaces the current
// one and cancels its pending dismissal.
type Presenter struct {
	mu       sync.Mutex
	ttl      time.Duration
	current  *Notice
	timer    Timer
	gen      uint64
	after    AfterFunc
	now      func() time.Time
	onChange func()
}

// NewPresenter creates a presenter whose notices expire after ttl.
func NewPresenter(ttl time.Duration, opts ...Option) *Presenter {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	p := &Presenter{
		ttl: ttl,
		after: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// TTL returns how long notices stay visible.
func (p *Presenter) TTL() time.Duration {
	return p.ttl
}

// Show displays text as the current notice.
func (p *Presenter) Show(kind Kind, text string) Notice {
	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.gen++
	gen := p.gen
	now := p.now()
	n := Notice{
		ID:        uuid.NewString(),
		Kind:      kind,
		Text:      text,
		ShownAt:   now,
		ExpiresAt: now.Add(p.ttl),
	}
	p.current = &n
	p.timer = p.after(p.ttl, func() { p.expire(gen) })
	p.mu.Unlock()

	p.changed()
	return n
}

// Success shows a success notice.
func (p *Presenter) Success(text string) Notice { return p.Show(Success, text) }

// Error shows an error notice.
func (p *Presenter) Error(text string) Notice { return p.Show(Error, text) }

// Info shows an informational notice.
func (p *Presenter) Info(text string) Notice { return p.Show(Info, text) }

// Current returns the visible notice, if any.
func (p *Presenter) Current() (Notice, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return Notice{}, false
	}
	return *p.current, true
}

// Dismiss hides the current notice immediately.
func (p *Presenter) Dismiss() {
	p.mu.Lock()
	if p.current == nil {
		p.mu.Unlock()
		return
	}
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.gen++
	p.current = nil
	p.mu.Unlock()

	p.changed()
}

func (p *Presenter) expire(gen uint64) {
	p.mu.Lock()
	// A stopped timer may still fire if it was already running; only the
	// latest generation may clear the slot.
	if gen != p.gen || p.current == nil {
		p.mu.Unlock()
		return
	}
	p.current = nil
	p.timer = nil
	p.mu.Unlock()

	p.changed()
}

func (p *Presenter) changed() {
	if p.onChange != nil {
		p.onChange()
	}
}
