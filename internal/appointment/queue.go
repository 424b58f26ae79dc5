package appointment

import (
	"sort"
	"time"
)

// dayLabelLayout matches how the board titles each group, e.g. "Mon Feb 02 2026".
const dayLabelLayout = "Mon Jan 02 2006"

// DayGroup is one calendar day's slice of the queue.
type DayGroup struct {
	Day   time.Time
	Label string
	Items []Appointment
}

// StatusCount is one row of the summary breakdown.
type StatusCount struct {
	Status Status `json:"status"`
	Count  int    `json:"count"`
	Label  string `json:"label"`
}

// QueueSummary is a snapshot aggregate over the current appointment list.
// It is derived on demand and never persisted.
type QueueSummary struct {
	TotalAppointments int           `json:"totalAppointments"`
	ScheduledToday    int           `json:"scheduledToday"`
	WaitingCount      int           `json:"waitingCount"`
	CompletedToday    int           `json:"completedToday"`
	OnlineCount       int           `json:"onlineCount"`
	InPersonCount     int           `json:"inPersonCount"`
	StatusBreakdown   []StatusCount `json:"statusBreakdown"`
	NextAppointment   *Appointment  `json:"nextAppointment"`
}

// OrderBySchedule returns a copy of list sorted ascending by scheduled
// time. The sort is stable, so equal times keep their original relative
// order. Unparsable (zero) timestamps sort first.
func OrderBySchedule(list []Appointment) []Appointment {
	ordered := make([]Appointment, len(list))
	copy(ordered, list)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ScheduledFor.Before(ordered[j].ScheduledFor.Time)
	})
	return ordered
}

// GroupByDay partitions the list into local calendar days. Groups come out
// chronologically and each group's items are sorted ascending by time.
func GroupByDay(list []Appointment) []DayGroup {
	ordered := OrderBySchedule(list)

	var groups []DayGroup
	index := make(map[string]int)

	for _, appt := range ordered {
		day := appt.ScheduledFor.In(time.Local)
		key := day.Format(dayLabelLayout)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DayGroup{
				Day:   time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.Local),
				Label: key,
			})
		}
		groups[i].Items = append(groups[i].Items, appt)
	}
	return groups
}

// Summarize computes the queue summary in a single pass. "Today" means the
// calendar day of now, in now's location.
func Summarize(list []Appointment, now time.Time) QueueSummary {
	if len(list) == 0 {
		return emptySummary()
	}

	counts := make(map[Status]int, len(Statuses()))

	summary := QueueSummary{
		TotalAppointments: len(list),
	}

	var next *Appointment
	for i := range list {
		appt := &list[i]
		counts[appt.Status]++

		if appt.VisitType == VisitOnline {
			summary.OnlineCount++
		} else {
			summary.InPersonCount++
		}

		if appt.ScheduledFor.SameDay(now) {
			summary.ScheduledToday++
			switch appt.Status {
			case StatusCompleted:
				summary.CompletedToday++
			case StatusScheduled, StatusCheckedIn, StatusInSession:
				summary.WaitingCount++
			}
		}

		if appt.Status.Terminal() || appt.ScheduledFor.IsZero() {
			continue
		}
		if next == nil || appt.ScheduledFor.Before(next.ScheduledFor.Time) {
			next = appt
		}
	}

	if next != nil {
		picked := *next
		summary.NextAppointment = &picked
	}

	summary.StatusBreakdown = make([]StatusCount, 0, len(Statuses()))
	for _, status := range Statuses() {
		summary.StatusBreakdown = append(summary.StatusBreakdown, StatusCount{
			Status: status,
			Count:  counts[status],
			Label:  status.Label(),
		})
	}
	return summary
}

func emptySummary() QueueSummary {
	breakdown := make([]StatusCount, 0, len(Statuses()))
	for _, status := range Statuses() {
		breakdown = append(breakdown, StatusCount{Status: status, Label: status.Label()})
	}
	return QueueSummary{StatusBreakdown: breakdown}
}
