package appointment

import (
	"strings"
	"time"
)

type VisitType string

const (
	VisitInPerson VisitType = "IN_PERSON"
	VisitOnline   VisitType = "ONLINE"
)

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusCheckedIn Status = "CHECKED_IN"
	StatusInSession Status = "IN_SESSION"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Statuses returns every status in declaration order. Summary breakdowns
// iterate this so zero counts are always present.
func Statuses() []Status {
	return []Status{StatusScheduled, StatusCheckedIn, StatusInSession, StatusCompleted, StatusCancelled}
}

// Valid reports whether s is one of the known status values.
func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCheckedIn, StatusInSession, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal statuses never count toward the next upcoming appointment.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Label renders a status for humans: CHECKED_IN becomes "Checked In".
func (s Status) Label() string {
	segments := strings.Split(strings.ToLower(string(s)), "_")
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		segments[i] = strings.ToUpper(seg[:1]) + seg[1:]
	}
	return strings.Join(segments, " ")
}

func (v VisitType) Valid() bool {
	return v == VisitInPerson || v == VisitOnline
}

// Appointment is a single booked clinic visit as the backend returns it.
// IDs and the created/updated stamps are assigned server-side.
type Appointment struct {
	ID            int64     `json:"id"`
	FullName      string    `json:"fullName"`
	ContactNumber string    `json:"contactNumber,omitempty"`
	VisitType     VisitType `json:"visitType"`
	ScheduledFor  Timestamp `json:"scheduledFor"`
	VisitReason   string    `json:"visitReason,omitempty"`
	Status        Status    `json:"status"`
	CreatedAt     Timestamp `json:"createdAt"`
	UpdatedAt     Timestamp `json:"updatedAt"`
}

// CreateInput is the booking request payload.
type CreateInput struct {
	FullName      string    `json:"fullName"`
	ContactNumber string    `json:"contactNumber,omitempty"`
	VisitType     VisitType `json:"visitType"`
	ScheduledFor  time.Time `json:"scheduledFor"`
	VisitReason   string    `json:"visitReason,omitempty"`
}

// Validate runs the pre-flight checks a booking must pass before any
// network call is made.
func (in CreateInput) Validate() error {
	if strings.TrimSpace(in.FullName) == "" {
		return &ValidationError{Message: "Please provide the patient's full name."}
	}
	if !in.VisitType.Valid() {
		return &ValidationError{Message: "Select how the visit will be delivered."}
	}
	if in.ScheduledFor.IsZero() {
		return &ValidationError{Message: "The selected schedule is invalid. Please review the date and time."}
	}
	return nil
}

// Normalize trims free-text fields in place.
func (in *CreateInput) Normalize() {
	in.FullName = strings.TrimSpace(in.FullName)
	in.ContactNumber = strings.TrimSpace(in.ContactNumber)
	in.VisitReason = strings.TrimSpace(in.VisitReason)
}
