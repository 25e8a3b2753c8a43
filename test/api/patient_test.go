package api_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatientFlow(t *testing.T) {
	name := uniqueName("María Prueba")
	cedula := fmt.Sprintf("%010d", time.Now().UnixNano()%1e10)

	createResp := makeRequest("POST", "/patients", map[string]interface{}{
		"cedula":  cedula,
		"name":    name,
		"phone":   "0991234567",
		"email":   fmt.Sprintf("maria_%d@example.com", time.Now().UnixNano()),
		"history": "Sin antecedentes relevantes",
	}, authToken)
	require.True(t, createResp.IsSuccess(), createResp.Message)
	patientID := createResp.GetString("id")
	require.NotEmpty(t, patientID)

	getResp := makeRequest("GET", "/patients/"+patientID, nil, authToken)
	require.True(t, getResp.IsSuccess())
	assert.Equal(t, name, getResp.GetString("name"))
	assert.Equal(t, cedula, getResp.GetString("cedula"))

	updateResp := makeRequest("PUT", "/patients/"+patientID, map[string]interface{}{
		"phone": "0997654321",
	}, authToken)
	require.True(t, updateResp.IsSuccess())
	assert.Equal(t, "0997654321", updateResp.GetString("phone"))
	assert.Equal(t, name, updateResp.GetString("name"))

	searchResp := makeRequest("GET", "/patients?q="+cedula, nil, authToken)
	require.True(t, searchResp.IsSuccess())
	require.NotEmpty(t, searchResp.DataList)

	deleteResp := makeRequest("DELETE", "/patients/"+patientID, nil, authToken)
	require.True(t, deleteResp.IsSuccess())

	goneResp := makeRequest("GET", "/patients/"+patientID, nil, authToken)
	assert.Equal(t, http.StatusNotFound, goneResp.StatusCode)
}

func TestPatientDeleteCascades(t *testing.T) {
	patientID := createTestPatient(t)
	serviceID := createTestService(t)
	professionalID := firstProfessionalID(t)

	createResp := makeRequest("POST", "/appointments", map[string]interface{}{
		"patient_id":      patientID,
		"service_id":      serviceID,
		"professional_id": professionalID,
		"sede":            "norte",
		"start_time":      nextMondayAt(11).Format(time.RFC3339),
	}, authToken)
	require.True(t, createResp.IsSuccess(), createResp.Message)
	appointmentID := createResp.GetString("id")

	noteResp := makeRequest("POST", "/clinical-notes", map[string]interface{}{
		"patient_id":      patientID,
		"professional_id": professionalID,
		"title":           "Control",
		"content":         "Evolución favorable",
		"note_date":       time.Now().Format(time.RFC3339),
	}, authToken)
	require.True(t, noteResp.IsSuccess(), noteResp.Message)
	noteID := noteResp.GetString("id")

	deleteResp := makeRequest("DELETE", "/patients/"+patientID, nil, authToken)
	require.True(t, deleteResp.IsSuccess())

	assert.Equal(t, http.StatusNotFound, makeRequest("GET", "/appointments/"+appointmentID, nil, authToken).StatusCode)
	assert.Equal(t, http.StatusNotFound, makeRequest("GET", "/clinical-notes/"+noteID, nil, authToken).StatusCode)
}

func TestFichaFlow(t *testing.T) {
	patientID := createTestPatient(t)

	createResp := makeRequest("POST", "/fichas", map[string]interface{}{
		"patient_id":                patientID,
		"fecha":                     time.Now().Format(time.RFC3339),
		"motivo_consulta":           "Dolor en el talón",
		"diabetes":                  true,
		"hipertension":              false,
		"medicacion":                "Metformina",
		"diagnostico_pie_derecho":   "Fascitis plantar",
		"diagnostico_pie_izquierdo": "Sin hallazgos",
	}, authToken)
	require.True(t, createResp.IsSuccess(), createResp.Message)
	fichaID := createResp.GetString("id")
	require.NotEmpty(t, fichaID)

	getResp := makeRequest("GET", "/fichas/"+fichaID, nil, authToken)
	require.True(t, getResp.IsSuccess())
	assert.Equal(t, "Dolor en el talón", getResp.GetString("motivo_consulta"))
	assert.Equal(t, true, getResp.Data["diabetes"])

	listResp := makeRequest("GET", "/patients/"+patientID+"/fichas", nil, authToken)
	require.True(t, listResp.IsSuccess())
	assert.NotEmpty(t, listResp.DataList)
}
