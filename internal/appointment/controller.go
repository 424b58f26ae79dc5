package appointment

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

const minSearchLength = 3

// State is the controller's transient flag bundle, read by whatever renders
// the queue.
type State struct {
	Loading    bool
	Submitting bool
	Err        string
}

// CreateResult is how booking outcomes reach the caller. Failures are a
// value, not an error: the form keeps its input and shows Message inline.
type CreateResult struct {
	OK          bool
	Appointment *Appointment
	Message     string
}

// Controller owns the authoritative in-memory appointment list for a
// session. All mutation goes through the backend first; the local list is
// only touched after a successful response. A background poll and direct
// calls share the controller, so everything is mutex-guarded.
type Controller struct {
	repo Repository
	log  zerolog.Logger

	mu         sync.Mutex
	list       []Appointment
	loading    bool
	submitting bool
	lastErr    string
}

func NewController(repo Repository, log zerolog.Logger) *Controller {
	return &Controller{
		repo: repo,
		log:  log,
	}
}

// Run fetches immediately and then refreshes on a fixed interval until ctx
// is cancelled. There is exactly one ticker per Run; callers must not start
// it twice.
func (c *Controller) Run(ctx context.Context, interval time.Duration) {
	if err := c.load(ctx); err != nil {
		c.log.Warn().Err(err).Msg("initial appointment fetch failed")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.load(ctx); err != nil {
				c.log.Warn().Err(err).Msg("appointment poll failed")
			}
		}
	}
}

// Load fetches the full active set and replaces the local list on success.
// On failure the previous list stays visible and the error message lands in
// State().Err.
func (c *Controller) Load(ctx context.Context) {
	_ = c.load(ctx)
}

// Refresh re-runs the fetch on demand. It reports nothing beyond the shared
// state it updates.
func (c *Controller) Refresh(ctx context.Context) {
	_ = c.load(ctx)
}

func (c *Controller) load(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	fetched, err := c.repo.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if err != nil {
		c.lastErr = err.Error()
		return err
	}
	c.list = OrderBySchedule(fetched)
	c.lastErr = ""
	return nil
}

// Create books an appointment. Validation failures and backend failures
// both come back in the result; Create never returns an error.
func (c *Controller) Create(ctx context.Context, input CreateInput) CreateResult {
	if err := input.Validate(); err != nil {
		return CreateResult{Message: err.Error()}
	}

	c.mu.Lock()
	c.submitting = true
	c.mu.Unlock()

	created, err := c.repo.Create(ctx, input)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false

	if err != nil {
		c.lastErr = err.Error()
		return CreateResult{Message: err.Error()}
	}

	c.list = OrderBySchedule(append([]Appointment{*created}, c.list...))
	c.lastErr = ""
	return CreateResult{OK: true, Appointment: created}
}

// UpdateStatus moves one appointment to the given status. Unlike Create,
// failures are returned as an error for the caller's own boundary to
// handle; the shared error state is set either way.
func (c *Controller) UpdateStatus(ctx context.Context, id int64, status Status) (*Appointment, error) {
	updated, err := c.repo.UpdateStatus(ctx, id, status)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.lastErr = err.Error()
		return nil, err
	}

	for i := range c.list {
		if c.list[i].ID == updated.ID {
			c.list[i] = *updated
			break
		}
	}
	c.list = OrderBySchedule(c.list)
	c.lastErr = ""
	return updated, nil
}

// Delete removes an appointment and then re-fetches the whole list rather
// than patching locally. A failed re-fetch is only logged; the delete
// itself already succeeded.
func (c *Controller) Delete(ctx context.Context, id int64) error {
	if err := c.repo.Remove(ctx, id); err != nil {
		c.mu.Lock()
		c.lastErr = err.Error()
		c.mu.Unlock()
		return err
	}
	if err := c.load(ctx); err != nil {
		c.log.Warn().Err(err).Int64("appointment_id", id).Msg("refresh after delete failed")
	}
	return nil
}

// Search looks up bookings by patient name. Results are the caller's own
// ephemeral list; the shared queue is never touched. Queries under three
// significant characters are rejected before any network call.
func (c *Controller) Search(ctx context.Context, name string) ([]Appointment, error) {
	trimmed := strings.TrimSpace(name)
	if utf8.RuneCountInString(trimmed) < minSearchLength {
		return nil, &ValidationError{Message: "Enter at least three characters to search for a booking."}
	}
	return c.repo.SearchByName(ctx, trimmed)
}

// Snapshot returns a copy of the current chronologically ordered list.
func (c *Controller) Snapshot() []Appointment {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Appointment, len(c.list))
	copy(out, c.list)
	return out
}

// Summary derives the queue aggregate from the current list.
func (c *Controller) Summary() QueueSummary {
	return Summarize(c.Snapshot(), time.Now())
}

// Board returns the current list grouped by calendar day.
func (c *Controller) Board() []DayGroup {
	return GroupByDay(c.Snapshot())
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Loading: c.loading, Submitting: c.submitting, Err: c.lastErr}
}
