// Package schedule derives the agenda grid from a resolved appointment list.
// Everything here is pure: callers fetch appointments, the functions below
// bucket them into day, week or month views and validate new placements
// against the clinic's opening hours.
package schedule

import (
	"fmt"
	"time"

	"github.com/podocentro/clinic-api/internal/model"
)

// Opening hours. Slots run hourly from OpeningHour to ClosingHour inclusive.
const (
	OpeningHour = 8
	ClosingHour = 20
	SlotsPerDay = ClosingHour - OpeningHour + 1
)

// MaxDayPreviews caps how many appointments a month-view cell lists before
// collapsing the rest into an overflow count.
const MaxDayPreviews = 3

type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

func (m ViewMode) Valid() bool {
	return m == ViewDay || m == ViewWeek || m == ViewMonth
}

// LocationAll widens a sede filter to both locations.
const LocationAll = "all"

// ViewState is the navigation state of the agenda: the reference date the
// user is looking at, the granularity, and the sede filter.
type ViewState struct {
	Reference time.Time
	Mode      ViewMode
	Location  string // "all" or a sede
}

// ErrOutsideBusinessHours rejects placements before 08:00 or after 20:00.
// Kept as a distinct type so handlers can map it to a 4xx instead of a
// generic store failure.
type ErrOutsideBusinessHours struct {
	Start time.Time
}

func (e ErrOutsideBusinessHours) Error() string {
	return fmt.Sprintf("appointment time %s is outside business hours (%02d:00-%02d:00)",
		e.Start.Format("15:04"), OpeningHour, ClosingHour)
}

// ValidateBusinessHours fails when the start time's hour component falls
// outside opening hours. This is a pre-flight check before any store write;
// it is not atomic against concurrent writers.
func ValidateBusinessHours(start time.Time) error {
	h := start.Hour()
	if h < OpeningHour || h > ClosingHour {
		return ErrOutsideBusinessHours{Start: start}
	}
	return nil
}

// FilterByLocation returns the subset of appointments at the given sede.
// "all" (or empty) returns the input unchanged, order preserved.
func FilterByLocation(appts []*model.Appointment, location string) []*model.Appointment {
	if location == LocationAll || location == "" {
		return appts
	}
	filtered := make([]*model.Appointment, 0, len(appts))
	for _, apt := range appts {
		if string(apt.Sede) == location {
			filtered = append(filtered, apt)
		}
	}
	return filtered
}

// Hours returns the hourly row labels of a day column, 08:00 through 20:00.
func Hours() []int {
	hours := make([]int, SlotsPerDay)
	for i := range hours {
		hours[i] = OpeningHour + i
	}
	return hours
}

// WeekDays returns the seven days of the week containing ref, starting on
// Monday.
func WeekDays(ref time.Time) []time.Time {
	monday := startOfWeek(ref)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = monday.AddDate(0, 0, i)
	}
	return days
}

// AppointmentForSlot finds the appointment occupying the (day, hour) cell:
// same calendar day and same hour component. If several appointments share
// the slot only the first in list order is returned; collisions are dropped
// silently. That mirrors the one-provider-per-hour assumption the clinic
// operates under today and is documented as a limitation, not a guarantee.
func AppointmentForSlot(appts []*model.Appointment, day time.Time, hour int) *model.Appointment {
	for _, apt := range appts {
		if sameDay(apt.StartTime, day) && apt.StartTime.Hour() == hour {
			return apt
		}
	}
	return nil
}

// Slot is one (day, hour) cell of a day or week grid.
type Slot struct {
	Day         time.Time          `json:"day"`
	Hour        int                `json:"hour"`
	Appointment *model.Appointment `json:"appointment,omitempty"`
}

// Grid is a rendered day or week view: one column per day, one row per
// opening hour.
type Grid struct {
	Days  []time.Time `json:"days"`
	Hours []int       `json:"hours"`
	Slots [][]Slot    `json:"slots"` // indexed [hour row][day column]
}

// BuildGrid lays the filtered appointments onto the day/week grid for the
// view state. Month mode is served by BuildMonth instead.
func BuildGrid(state ViewState, appts []*model.Appointment) *Grid {
	filtered := FilterByLocation(appts, state.Location)

	var days []time.Time
	switch state.Mode {
	case ViewWeek:
		days = WeekDays(state.Reference)
	default:
		days = []time.Time{startOfDay(state.Reference)}
	}

	hours := Hours()
	slots := make([][]Slot, len(hours))
	for i, hour := range hours {
		row := make([]Slot, len(days))
		for j, day := range days {
			row[j] = Slot{
				Day:         day,
				Hour:        hour,
				Appointment: AppointmentForSlot(filtered, day, hour),
			}
		}
		slots[i] = row
	}

	return &Grid{Days: days, Hours: hours, Slots: slots}
}

// ViewRange returns the half-open [from, to) interval of start times
// visible in the view, so callers can bound the store query instead of
// fetching the whole history.
func ViewRange(state ViewState) (time.Time, time.Time) {
	switch state.Mode {
	case ViewWeek:
		monday := startOfWeek(state.Reference)
		return monday, monday.AddDate(0, 0, 7)
	case ViewMonth:
		first := time.Date(state.Reference.Year(), state.Reference.Month(), 1, 0, 0, 0, 0, state.Reference.Location())
		last := first.AddDate(0, 1, -1)
		return startOfWeek(first), endOfWeek(last).AddDate(0, 0, 1)
	default:
		day := startOfDay(state.Reference)
		return day, day.AddDate(0, 0, 1)
	}
}

// MonthCell is one day of a month view. Out-of-month days are still
// populated but flagged so they can be rendered dimmed.
type MonthCell struct {
	Day      time.Time            `json:"day"`
	InMonth  bool                 `json:"in_month"`
	Count    int                  `json:"count"`
	Previews []*model.Appointment `json:"previews"`
	Overflow int                  `json:"overflow"`
}

// MonthGrid is a 5-or-6 week calendar spanning the reference month, aligned
// Monday through Sunday.
type MonthGrid struct {
	Month time.Month     `json:"month"`
	Year  int            `json:"year"`
	Weeks [][7]MonthCell `json:"weeks"`
}

// BuildMonth buckets the filtered appointments by calendar day across the
// calendar grid of the reference month: from the Monday on or before the
// 1st to the Sunday on or after the last day.
func BuildMonth(state ViewState, appts []*model.Appointment) *MonthGrid {
	filtered := FilterByLocation(appts, state.Location)
	buckets := BucketByDay(filtered)

	first := time.Date(state.Reference.Year(), state.Reference.Month(), 1, 0, 0, 0, 0, state.Reference.Location())
	last := first.AddDate(0, 1, -1)

	start := startOfWeek(first)
	end := endOfWeek(last)

	var weeks [][7]MonthCell
	for day := start; !day.After(end); {
		var week [7]MonthCell
		for i := 0; i < 7; i++ {
			dayAppts := buckets[dayKey(day)]
			cell := MonthCell{
				Day:     day,
				InMonth: day.Month() == first.Month(),
				Count:   len(dayAppts),
			}
			if len(dayAppts) > MaxDayPreviews {
				cell.Previews = dayAppts[:MaxDayPreviews]
				cell.Overflow = len(dayAppts) - MaxDayPreviews
			} else {
				cell.Previews = dayAppts
			}
			week[i] = cell
			day = day.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}

	return &MonthGrid{Month: first.Month(), Year: first.Year(), Weeks: weeks}
}

// BucketByDay groups appointments by calendar day, ignoring time of day.
// Within a day the input order is preserved, so re-running the bucketing on
// the same list yields identical groupings.
func BucketByDay(appts []*model.Appointment) map[string][]*model.Appointment {
	buckets := make(map[string][]*model.Appointment)
	for _, apt := range appts {
		key := dayKey(apt.StartTime)
		buckets[key] = append(buckets[key], apt)
	}
	return buckets
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	// time.Weekday puts Sunday at 0; shift so Monday starts the week.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func endOfWeek(t time.Time) time.Time {
	return startOfWeek(t).AddDate(0, 0, 6)
}
