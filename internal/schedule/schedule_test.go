package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podocentro/clinic-api/internal/model"
)

func apt(name string, sede model.Sede, start time.Time) *model.Appointment {
	a := &model.Appointment{
		PatientName: name,
		Sede:        sede,
		StartTime:   start,
		Status:      model.AppointmentStatusScheduled,
	}
	a.ID = uuid.New()
	return a
}

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func TestValidateBusinessHours(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		ok    bool
	}{
		{"before opening", at(2024, 3, 4, 7, 30), false},
		{"at opening", at(2024, 3, 4, 8, 0), true},
		{"mid morning", at(2024, 3, 4, 10, 0), true},
		{"at closing", at(2024, 3, 4, 20, 0), true},
		{"past closing", at(2024, 3, 4, 21, 0), false},
		{"midnight", at(2024, 3, 4, 0, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateBusinessHours(tc.start)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.IsType(t, ErrOutsideBusinessHours{}, err)
			}
		})
	}
}

func TestFilterByLocation(t *testing.T) {
	appts := []*model.Appointment{
		apt("Ana", model.SedeNorte, at(2024, 3, 4, 10, 0)),
		apt("Luis", model.SedeSur, at(2024, 3, 4, 11, 0)),
		apt("Rosa", model.SedeNorte, at(2024, 3, 5, 9, 0)),
	}

	norte := FilterByLocation(appts, "norte")
	require.Len(t, norte, 2)
	assert.Equal(t, "Ana", norte[0].PatientName)
	assert.Equal(t, "Rosa", norte[1].PatientName)

	sur := FilterByLocation(appts, "sur")
	require.Len(t, sur, 1)
	assert.Equal(t, "Luis", sur[0].PatientName)

	// "all" yields the unfiltered input, order unchanged.
	all := FilterByLocation(appts, LocationAll)
	assert.Equal(t, appts, all)
}

func TestAppointmentForSlot(t *testing.T) {
	monday := at(2024, 3, 4, 0, 0)
	appts := []*model.Appointment{
		apt("Ana", model.SedeNorte, at(2024, 3, 4, 10, 0)),
	}

	found := AppointmentForSlot(appts, monday, 10)
	require.NotNil(t, found)
	assert.Equal(t, "Ana", found.PatientName)

	assert.Nil(t, AppointmentForSlot(appts, monday, 11))
	assert.Nil(t, AppointmentForSlot(appts, monday.AddDate(0, 0, 1), 10))
}

func TestAppointmentForSlotFirstMatchWins(t *testing.T) {
	// Two appointments sharing a slot: list order decides which surfaces.
	first := apt("Ana", model.SedeNorte, at(2024, 3, 4, 10, 0))
	second := apt("Luis", model.SedeNorte, at(2024, 3, 4, 10, 30))

	found := AppointmentForSlot([]*model.Appointment{first, second}, at(2024, 3, 4, 0, 0), 10)
	require.NotNil(t, found)
	assert.Equal(t, "Ana", found.PatientName)

	found = AppointmentForSlot([]*model.Appointment{second, first}, at(2024, 3, 4, 0, 0), 10)
	require.NotNil(t, found)
	assert.Equal(t, "Luis", found.PatientName)
}

func TestWeekDays(t *testing.T) {
	// 2024-03-06 is a Wednesday; the week starts Monday the 4th.
	days := WeekDays(at(2024, 3, 6, 15, 30))
	require.Len(t, days, 7)
	assert.Equal(t, at(2024, 3, 4, 0, 0), days[0])
	assert.Equal(t, time.Monday, days[0].Weekday())
	assert.Equal(t, at(2024, 3, 10, 0, 0), days[6])
	assert.Equal(t, time.Sunday, days[6].Weekday())

	// A Monday reference anchors its own week.
	days = WeekDays(at(2024, 3, 4, 9, 0))
	assert.Equal(t, at(2024, 3, 4, 0, 0), days[0])
}

func TestBuildGridWeekView(t *testing.T) {
	appts := []*model.Appointment{
		apt("Ana", model.SedeNorte, at(2024, 3, 4, 10, 0)),
	}

	for _, location := range []string{LocationAll, "norte"} {
		grid := BuildGrid(ViewState{Reference: at(2024, 3, 4, 0, 0), Mode: ViewWeek, Location: location}, appts)
		require.Len(t, grid.Days, 7)
		require.Len(t, grid.Hours, 13)
		assert.Equal(t, 8, grid.Hours[0])
		assert.Equal(t, 20, grid.Hours[12])

		// Monday 10:00 is row 2 (10-8), column 0.
		slot := grid.Slots[2][0]
		require.NotNil(t, slot.Appointment, "location %q", location)
		assert.Equal(t, "Ana", slot.Appointment.PatientName)
	}

	grid := BuildGrid(ViewState{Reference: at(2024, 3, 4, 0, 0), Mode: ViewWeek, Location: "sur"}, appts)
	assert.Nil(t, grid.Slots[2][0].Appointment)
}

func TestBuildGridDayView(t *testing.T) {
	appts := []*model.Appointment{
		apt("Ana", model.SedeNorte, at(2024, 3, 4, 8, 0)),
		apt("Luis", model.SedeSur, at(2024, 3, 4, 20, 0)),
	}

	grid := BuildGrid(ViewState{Reference: at(2024, 3, 4, 12, 0), Mode: ViewDay, Location: LocationAll}, appts)
	require.Len(t, grid.Days, 1)
	require.Len(t, grid.Slots, 13)

	require.NotNil(t, grid.Slots[0][0].Appointment)
	assert.Equal(t, "Ana", grid.Slots[0][0].Appointment.PatientName)
	require.NotNil(t, grid.Slots[12][0].Appointment)
	assert.Equal(t, "Luis", grid.Slots[12][0].Appointment.PatientName)
}

func TestBucketByDayIdempotentAndOrderPreserving(t *testing.T) {
	appts := []*model.Appointment{
		apt("Ana", model.SedeNorte, at(2024, 3, 4, 9, 0)),
		apt("Luis", model.SedeNorte, at(2024, 3, 4, 11, 0)),
		apt("Rosa", model.SedeSur, at(2024, 3, 5, 10, 0)),
	}

	first := BucketByDay(appts)
	second := BucketByDay(appts)
	assert.Equal(t, first, second)

	day := first["2024-03-04"]
	require.Len(t, day, 2)
	assert.Equal(t, "Ana", day[0].PatientName)
	assert.Equal(t, "Luis", day[1].PatientName)
}

func TestBuildMonthOverflow(t *testing.T) {
	// Four appointments on March 4th, three spread over the month.
	appts := []*model.Appointment{
		apt("A", model.SedeNorte, at(2024, 3, 4, 8, 0)),
		apt("B", model.SedeNorte, at(2024, 3, 4, 9, 0)),
		apt("C", model.SedeNorte, at(2024, 3, 4, 10, 0)),
		apt("D", model.SedeNorte, at(2024, 3, 4, 11, 0)),
		apt("E", model.SedeNorte, at(2024, 3, 12, 10, 0)),
		apt("F", model.SedeSur, at(2024, 3, 12, 11, 0)),
		apt("G", model.SedeNorte, at(2024, 3, 20, 10, 0)),
	}

	month := BuildMonth(ViewState{Reference: at(2024, 3, 15, 0, 0), Mode: ViewMonth, Location: LocationAll}, appts)
	assert.Equal(t, time.March, month.Month)

	var busy, mid MonthCell
	for _, week := range month.Weeks {
		for _, cell := range week {
			switch cell.Day.Day() {
			case 4:
				if cell.InMonth {
					busy = cell
				}
			case 12:
				if cell.InMonth {
					mid = cell
				}
			}
		}
	}

	assert.Equal(t, 4, busy.Count)
	require.Len(t, busy.Previews, 3)
	assert.Equal(t, 1, busy.Overflow)
	assert.Equal(t, "A", busy.Previews[0].PatientName)

	assert.Equal(t, 2, mid.Count)
	assert.Len(t, mid.Previews, 2)
	assert.Zero(t, mid.Overflow)
}

func TestBuildMonthGridShape(t *testing.T) {
	// March 2024: Fri 1st through Sun 31st needs 5 Monday-aligned weeks
	// (Feb 26 - Mar 31).
	month := BuildMonth(ViewState{Reference: at(2024, 3, 1, 0, 0), Mode: ViewMonth}, nil)
	require.Len(t, month.Weeks, 5)

	firstCell := month.Weeks[0][0]
	assert.Equal(t, time.Monday, firstCell.Day.Weekday())
	assert.False(t, firstCell.InMonth)
	assert.Equal(t, 26, firstCell.Day.Day())

	lastCell := month.Weeks[4][6]
	assert.Equal(t, time.Sunday, lastCell.Day.Weekday())
	assert.True(t, lastCell.InMonth)
	assert.Equal(t, 31, lastCell.Day.Day())

	// September 2024: Sun 1st through Mon 30th spans 6 weeks.
	month = BuildMonth(ViewState{Reference: at(2024, 9, 10, 0, 0), Mode: ViewMonth}, nil)
	assert.Len(t, month.Weeks, 6)
}

func TestStatusTransitionsUnconstrained(t *testing.T) {
	statuses := []model.AppointmentStatus{
		model.AppointmentStatusScheduled,
		model.AppointmentStatusCompleted,
		model.AppointmentStatusCancelled,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			assert.True(t, model.ValidStatusTransition(from, to), "%s -> %s", from, to)
		}
	}

	assert.False(t, model.ValidStatusTransition("scheduled", "archived"))
}
