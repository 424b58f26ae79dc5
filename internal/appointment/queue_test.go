package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(t time.Time) Timestamp { return NewTimestamp(t) }

func sampleQueue(now time.Time) []Appointment {
	return []Appointment{
		{ID: 1, FullName: "Maya Chen", VisitType: VisitInPerson, Status: StatusScheduled,
			ScheduledFor: at(now.Add(26 * time.Hour))},
		{ID: 2, FullName: "Omar Haddad", VisitType: VisitOnline, Status: StatusCheckedIn,
			ScheduledFor: at(now.Add(-time.Hour))},
		{ID: 3, FullName: "Priya Nair", VisitType: VisitInPerson, Status: StatusCompleted,
			ScheduledFor: at(now.Add(-3 * time.Hour))},
		{ID: 4, FullName: "Jonas Berg", VisitType: VisitOnline, Status: StatusCancelled,
			ScheduledFor: at(now.Add(-48 * time.Hour))},
		{ID: 5, FullName: "Lena Fischer", VisitType: VisitInPerson, Status: StatusScheduled,
			ScheduledFor: at(now.Add(2 * time.Hour))},
	}
}

func TestOrderByScheduleStable(t *testing.T) {
	base := time.Date(2026, 8, 31, 9, 0, 0, 0, time.Local)
	list := []Appointment{
		{ID: 10, ScheduledFor: at(base.Add(time.Hour))},
		{ID: 11, ScheduledFor: at(base)},
		{ID: 12, ScheduledFor: at(base.Add(time.Hour))}, // tie with 10, must stay after it
	}

	ordered := OrderBySchedule(list)

	require.Len(t, ordered, 3)
	assert.Equal(t, int64(11), ordered[0].ID)
	assert.Equal(t, int64(10), ordered[1].ID)
	assert.Equal(t, int64(12), ordered[2].ID)

	// Input untouched.
	assert.Equal(t, int64(10), list[0].ID)
}

func TestGroupByDayPartition(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)
	list := sampleQueue(now)

	groups := GroupByDay(list)
	require.NotEmpty(t, groups)

	// Groups come out chronologically.
	for i := 1; i < len(groups); i++ {
		assert.True(t, groups[i-1].Day.Before(groups[i].Day),
			"group %d (%s) should precede group %d (%s)", i-1, groups[i-1].Label, i, groups[i].Label)
	}

	// The flattened groups are a permutation of the input, sorted within
	// each day.
	seen := map[int64]int{}
	total := 0
	for _, group := range groups {
		for i := 1; i < len(group.Items); i++ {
			assert.False(t, group.Items[i].ScheduledFor.Before(group.Items[i-1].ScheduledFor.Time))
		}
		for _, appt := range group.Items {
			seen[appt.ID]++
			total++
			assert.Equal(t, group.Label, appt.ScheduledFor.In(time.Local).Format("Mon Jan 02 2006"))
		}
	}
	assert.Equal(t, len(list), total)
	for _, appt := range list {
		assert.Equal(t, 1, seen[appt.ID], "appointment %d appears exactly once", appt.ID)
	}
}

func TestSummarizeCounts(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)
	summary := Summarize(sampleQueue(now), now)

	assert.Equal(t, 5, summary.TotalAppointments)
	assert.Equal(t, 3, summary.ScheduledToday) // ids 2, 3, 5
	assert.Equal(t, 2, summary.WaitingCount)   // ids 2, 5
	assert.Equal(t, 1, summary.CompletedToday) // id 3
	assert.Equal(t, 2, summary.OnlineCount)
	assert.Equal(t, 3, summary.InPersonCount)

	require.NotNil(t, summary.NextAppointment)
	assert.Equal(t, int64(2), summary.NextAppointment.ID) // earliest non-terminal
}

func TestSummarizeBreakdownCoversAllStatuses(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)
	summary := Summarize(sampleQueue(now), now)

	require.Len(t, summary.StatusBreakdown, len(Statuses()))
	sum := 0
	for i, row := range summary.StatusBreakdown {
		assert.Equal(t, Statuses()[i], row.Status)
		assert.Equal(t, row.Status.Label(), row.Label)
		sum += row.Count
	}
	assert.Equal(t, summary.TotalAppointments, sum)
}

func TestSummarizeTodayGating(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)
	list := []Appointment{
		{ID: 1, Status: StatusScheduled, VisitType: VisitInPerson,
			ScheduledFor: at(time.Date(2026, 8, 31, 10, 0, 0, 0, time.Local))},
		{ID: 2, Status: StatusCompleted, VisitType: VisitInPerson,
			ScheduledFor: at(now.Add(-48 * time.Hour))},
		{ID: 3, Status: StatusScheduled, VisitType: VisitInPerson,
			ScheduledFor: at(now.Add(24 * time.Hour))},
	}

	summary := Summarize(list, now)
	assert.Equal(t, 1, summary.ScheduledToday)
	assert.Equal(t, 1, summary.WaitingCount)
	assert.Equal(t, 0, summary.CompletedToday)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil, time.Now())

	assert.Zero(t, summary.TotalAppointments)
	assert.Zero(t, summary.ScheduledToday)
	assert.Nil(t, summary.NextAppointment)
	require.Len(t, summary.StatusBreakdown, len(Statuses()))
	for _, row := range summary.StatusBreakdown {
		assert.Zero(t, row.Count)
		assert.NotEmpty(t, row.Label)
	}
}

func TestSummarizeNextSkipsTerminalAndZero(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)

	// Only terminal statuses: no next appointment.
	terminal := []Appointment{
		{ID: 1, Status: StatusCompleted, ScheduledFor: at(now.Add(time.Hour))},
		{ID: 2, Status: StatusCancelled, ScheduledFor: at(now.Add(2 * time.Hour))},
	}
	assert.Nil(t, Summarize(terminal, now).NextAppointment)

	// A zero timestamp never wins even though it sorts first.
	withZero := []Appointment{
		{ID: 3, Status: StatusScheduled},
		{ID: 4, Status: StatusScheduled, ScheduledFor: at(now.Add(time.Hour))},
	}
	next := Summarize(withZero, now).NextAppointment
	require.NotNil(t, next)
	assert.Equal(t, int64(4), next.ID)
}

func TestSummarizeNextTieBreaksOnInputOrder(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)
	when := at(now.Add(time.Hour))
	list := []Appointment{
		{ID: 7, Status: StatusScheduled, ScheduledFor: when},
		{ID: 8, Status: StatusScheduled, ScheduledFor: when},
	}
	next := Summarize(list, now).NextAppointment
	require.NotNil(t, next)
	assert.Equal(t, int64(7), next.ID)
}
