package stub

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/clinicdesk/clinic-queue/internal/appointment"
)

var visitReasons = []string{
	"Annual check-up",
	"Follow-up consultation",
	"Persistent cough",
	"Blood pressure review",
	"Vaccination",
	"Lab results discussion",
	"Skin rash",
	"Back pain",
	"",
}

// Seed fills the store with count demo appointments spread over a window of
// three days either side of now. Past visits come out completed or
// cancelled, today's get a mix of active statuses, future ones stay
// scheduled.
func Seed(store *Store, count int) {
	now := time.Now()

	for i := 0; i < count; i++ {
		offset := time.Duration(gofakeit.Number(-3*24, 3*24)) * time.Hour
		scheduledFor := now.Add(offset).Truncate(30 * time.Minute)

		visitType := appointment.VisitInPerson
		if gofakeit.Bool() {
			visitType = appointment.VisitOnline
		}

		contact := ""
		if gofakeit.Number(0, 3) > 0 {
			contact = gofakeit.Phone()
		}

		created := store.Create(appointment.CreateInput{
			FullName:      gofakeit.Name(),
			ContactNumber: contact,
			VisitType:     visitType,
			ScheduledFor:  scheduledFor,
			VisitReason:   visitReasons[gofakeit.Number(0, len(visitReasons)-1)],
		})

		if status := seededStatus(scheduledFor, now); status != appointment.StatusScheduled {
			store.UpdateStatus(created.ID, status)
		}
	}
}

func seededStatus(scheduledFor, now time.Time) appointment.Status {
	switch {
	case scheduledFor.Before(now.Add(-2 * time.Hour)):
		if gofakeit.Number(0, 4) == 0 {
			return appointment.StatusCancelled
		}
		return appointment.StatusCompleted
	case scheduledFor.Before(now):
		active := []appointment.Status{
			appointment.StatusCheckedIn,
			appointment.StatusInSession,
			appointment.StatusCompleted,
		}
		return active[gofakeit.Number(0, len(active)-1)]
	default:
		return appointment.StatusScheduled
	}
}
