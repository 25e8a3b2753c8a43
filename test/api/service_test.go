package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceCatalogFlow(t *testing.T) {
	name := uniqueName("Reflexología")

	createResp := makeRequest("POST", "/services", map[string]interface{}{
		"name":            name,
		"duration":        45,
		"price":           30.0,
		"available_sedes": []string{"norte"},
	}, authToken)
	require.True(t, createResp.IsSuccess(), createResp.Message)
	serviceID := createResp.GetString("id")
	require.NotEmpty(t, serviceID)
	t.Cleanup(func() {
		makeRequest("DELETE", "/services/"+serviceID, nil, authToken)
	})

	updateResp := makeRequest("PUT", "/services/"+serviceID, map[string]interface{}{
		"price": 35.0,
	}, authToken)
	require.True(t, updateResp.IsSuccess())
	assert.Equal(t, 35.0, updateResp.Data["price"])

	listResp := makeRequest("GET", "/services", nil, authToken)
	require.True(t, listResp.IsSuccess())
	assert.NotEmpty(t, listResp.DataList)
}

func TestAppointmentRejectedAtUnofferedSede(t *testing.T) {
	patientID := createTestPatient(t)
	professionalID := firstProfessionalID(t)

	norteOnly := makeRequest("POST", "/services", map[string]interface{}{
		"name":            uniqueName("Estudio de la marcha"),
		"duration":        60,
		"price":           40.0,
		"available_sedes": []string{"norte"},
	}, authToken)
	require.True(t, norteOnly.IsSuccess(), norteOnly.Message)
	serviceID := norteOnly.GetString("id")
	t.Cleanup(func() {
		makeRequest("DELETE", "/services/"+serviceID, nil, authToken)
	})

	resp := makeRequest("POST", "/appointments", map[string]interface{}{
		"patient_id":      patientID,
		"service_id":      serviceID,
		"professional_id": professionalID,
		"sede":            "sur",
		"start_time":      nextMondayAt(12).Format(time.RFC3339),
	}, authToken)
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReportsEndpoints(t *testing.T) {
	summaryResp := makeRequest("GET", "/reports/summary", nil, authToken)
	require.True(t, summaryResp.IsSuccess(), summaryResp.Message)
	assert.Contains(t, summaryResp.Data, "total_patients")
	assert.Contains(t, summaryResp.Data, "monthly_income")

	incomeResp := makeRequest("GET", "/reports/income", nil, authToken)
	require.True(t, incomeResp.IsSuccess(), incomeResp.Message)
	assert.Contains(t, incomeResp.Data, "total")
	assert.Contains(t, incomeResp.Data, "by_service")
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	resp := makeRequest("GET", "/appointments", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
