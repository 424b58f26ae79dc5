// Package stub is an in-memory stand-in for the clinic backend. It serves
// the same REST contract the real service exposes, which makes it usable
// both as an integration-test fixture and as a local dev target for the
// console.
package stub

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/clinicdesk/clinic-queue/internal/appointment"
)

// Store holds the appointment set behind the stub's handlers.
type Store struct {
	mu     sync.Mutex
	nextID int64
	appts  map[int64]appointment.Appointment
}

func NewStore() *Store {
	return &Store{
		nextID: 1,
		appts:  make(map[int64]appointment.Appointment),
	}
}

// List returns every appointment ordered by scheduled time, then id.
func (s *Store) List() []appointment.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderedLocked()
}

// Create assigns an id and server timestamps and stores the booking with
// status SCHEDULED.
func (s *Store) Create(input appointment.CreateInput) appointment.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	appt := appointment.Appointment{
		ID:            s.nextID,
		FullName:      input.FullName,
		ContactNumber: input.ContactNumber,
		VisitType:     input.VisitType,
		ScheduledFor:  appointment.NewTimestamp(input.ScheduledFor.UTC()),
		VisitReason:   input.VisitReason,
		Status:        appointment.StatusScheduled,
		CreatedAt:     appointment.NewTimestamp(now),
		UpdatedAt:     appointment.NewTimestamp(now),
	}
	s.nextID++
	s.appts[appt.ID] = appt
	return appt
}

// UpdateStatus sets the status and refreshes the updated stamp. The second
// return is false when the id is unknown.
func (s *Store) UpdateStatus(id int64, status appointment.Status) (appointment.Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	appt, ok := s.appts[id]
	if !ok {
		return appointment.Appointment{}, false
	}
	appt.Status = status
	appt.UpdatedAt = appointment.NewTimestamp(time.Now().UTC())
	s.appts[id] = appt
	return appt, true
}

// Delete removes the appointment, reporting whether it existed.
func (s *Store) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.appts[id]; !ok {
		return false
	}
	delete(s.appts, id)
	return true
}

// SearchByName does a case-insensitive substring match over full names,
// ordered like List.
func (s *Store) SearchByName(name string) []appointment.Appointment {
	needle := strings.ToLower(strings.TrimSpace(name))

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []appointment.Appointment
	for _, appt := range s.orderedLocked() {
		if strings.Contains(strings.ToLower(appt.FullName), needle) {
			out = append(out, appt)
		}
	}
	return out
}

func (s *Store) orderedLocked() []appointment.Appointment {
	out := make([]appointment.Appointment, 0, len(s.appts))
	for _, appt := range s.appts {
		out = append(out, appt)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ScheduledFor.Equal(out[j].ScheduledFor.Time) {
			return out[i].ID < out[j].ID
		}
		return out[i].ScheduledFor.Before(out[j].ScheduledFor.Time)
	})
	return out
}
