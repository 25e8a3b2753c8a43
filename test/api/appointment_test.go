package api_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nextMondayAt(hour int) time.Time {
	now := time.Now()
	daysAhead := (int(time.Monday) - int(now.Weekday()) + 7) % 7
	if daysAhead == 0 {
		daysAhead = 7
	}
	day := now.AddDate(0, 0, daysAhead)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
}

func TestAppointmentFlow(t *testing.T) {
	patientID := createTestPatient(t)
	serviceID := createTestService(t)
	professionalID := firstProfessionalID(t)

	start := nextMondayAt(10)

	createResp := makeRequest("POST", "/appointments", map[string]interface{}{
		"patient_id":      patientID,
		"service_id":      serviceID,
		"professional_id": professionalID,
		"sede":            "norte",
		"start_time":      start.Format(time.RFC3339),
	}, authToken)
	require.True(t, createResp.IsSuccess(), createResp.Message)
	appointmentID := createResp.GetString("id")
	require.NotEmpty(t, appointmentID)
	assert.Equal(t, "scheduled", createResp.GetString("status"))
	t.Cleanup(func() {
		makeRequest("DELETE", "/appointments/"+appointmentID, nil, authToken)
	})

	// Display names come resolved on reads.
	getResp := makeRequest("GET", "/appointments/"+appointmentID, nil, authToken)
	require.True(t, getResp.IsSuccess())
	assert.NotEmpty(t, getResp.GetString("patient_name"))
	assert.NotEmpty(t, getResp.GetString("service_name"))

	// Complete the visit.
	updateResp := makeRequest("PUT", "/appointments/"+appointmentID, map[string]interface{}{
		"status": "completed",
	}, authToken)
	require.True(t, updateResp.IsSuccess())
	assert.Equal(t, "completed", updateResp.GetString("status"))

	// Completed visits can still be cancelled by explicit staff action.
	updateResp = makeRequest("PUT", "/appointments/"+appointmentID, map[string]interface{}{
		"status": "cancelled",
	}, authToken)
	require.True(t, updateResp.IsSuccess())
	assert.Equal(t, "cancelled", updateResp.GetString("status"))
}

func TestAppointmentRejectedOutsideBusinessHours(t *testing.T) {
	patientID := createTestPatient(t)
	serviceID := createTestService(t)
	professionalID := firstProfessionalID(t)

	early := nextMondayAt(7)

	resp := makeRequest("POST", "/appointments", map[string]interface{}{
		"patient_id":      patientID,
		"service_id":      serviceID,
		"professional_id": professionalID,
		"sede":            "sur",
		"start_time":      early.Format(time.RFC3339),
	}, authToken)

	assert.False(t, resp.IsSuccess())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAgendaWeek(t *testing.T) {
	patientID := createTestPatient(t)
	serviceID := createTestService(t)
	professionalID := firstProfessionalID(t)

	start := nextMondayAt(9)

	createResp := makeRequest("POST", "/appointments", map[string]interface{}{
		"patient_id":      patientID,
		"service_id":      serviceID,
		"professional_id": professionalID,
		"sede":            "norte",
		"start_time":      start.Format(time.RFC3339),
	}, authToken)
	require.True(t, createResp.IsSuccess(), createResp.Message)
	appointmentID := createResp.GetString("id")
	t.Cleanup(func() {
		makeRequest("DELETE", "/appointments/"+appointmentID, nil, authToken)
	})

	agendaResp := makeRequest("GET",
		fmt.Sprintf("/agenda?date=%s&mode=week&location=norte", start.Format("2006-01-02")),
		nil, authToken)
	require.True(t, agendaResp.IsSuccess(), agendaResp.Message)
	assert.Equal(t, "week", agendaResp.GetString("mode"))

	grid, ok := agendaResp.Data["grid"].(map[string]interface{})
	require.True(t, ok, "week agenda should carry a grid")

	hours, ok := grid["hours"].([]interface{})
	require.True(t, ok)
	assert.Len(t, hours, 13)

	days, ok := grid["days"].([]interface{})
	require.True(t, ok)
	assert.Len(t, days, 7)

	// The sur view of the same week must not show the norte appointment.
	surResp := makeRequest("GET",
		fmt.Sprintf("/agenda?date=%s&mode=week&location=sur", start.Format("2006-01-02")),
		nil, authToken)
	require.True(t, surResp.IsSuccess())

	surGrid := surResp.Data["grid"].(map[string]interface{})
	for _, row := range surGrid["slots"].([]interface{}) {
		for _, cell := range row.([]interface{}) {
			slot := cell.(map[string]interface{})
			if apt, ok := slot["appointment"].(map[string]interface{}); ok {
				assert.NotEqual(t, appointmentID, apt["id"])
			}
		}
	}
}

func TestAgendaRejectsInvalidMode(t *testing.T) {
	resp := makeRequest("GET", "/agenda?mode=fortnight", nil, authToken)
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
