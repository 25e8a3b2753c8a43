package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podocentro/clinic-api/internal/model"
	"github.com/podocentro/clinic-api/internal/repository"
	"github.com/podocentro/clinic-api/internal/schedule"
	apperrors "github.com/podocentro/clinic-api/pkg/errors"
	"github.com/podocentro/clinic-api/pkg/metrics"
)

// Registered once; promauto panics on duplicate registration.
var testMetrics = metrics.NewMetrics("test")

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
	listCalls    int
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, apt *model.Appointment) error {
	if apt.ID == uuid.Nil {
		apt.ID = uuid.New()
	}
	cp := *apt
	r.appointments[apt.ID] = &cp
	return nil
}

func (r *fakeAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, ok := r.appointments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *apt
	return &cp, nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, apt *model.Appointment) error {
	if _, ok := r.appointments[apt.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *apt
	r.appointments[apt.ID] = &cp
	return nil
}

func (r *fakeAppointmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.appointments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.appointments, id)
	return nil
}

func (r *fakeAppointmentRepo) List(_ context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	r.listCalls++
	var out []*model.Appointment
	for _, apt := range r.appointments {
		if filters != nil {
			if !filters.From.IsZero() && apt.StartTime.Before(filters.From) {
				continue
			}
			if !filters.To.IsZero() && !apt.StartTime.Before(filters.To) {
				continue
			}
			if filters.Sede != "" && apt.Sede != filters.Sede {
				continue
			}
		}
		cp := *apt
		out = append(out, &cp)
	}
	return out, nil
}

type fakeServiceRepo struct {
	services map[uuid.UUID]*model.Service
}

func (r *fakeServiceRepo) Create(_ context.Context, svc *model.Service) error {
	r.services[svc.ID] = svc
	return nil
}

func (r *fakeServiceRepo) Get(_ context.Context, id uuid.UUID) (*model.Service, error) {
	svc, ok := r.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return svc, nil
}

func (r *fakeServiceRepo) Update(context.Context, *model.Service) error { return nil }
func (r *fakeServiceRepo) Delete(context.Context, uuid.UUID) error     { return nil }
func (r *fakeServiceRepo) List(context.Context) ([]*model.Service, error) {
	return nil, nil
}

type fakePatientRepo struct {
	patients map[uuid.UUID]*model.Patient
}

func (r *fakePatientRepo) Create(_ context.Context, p *model.Patient) error {
	r.patients[p.ID] = p
	return nil
}

func (r *fakePatientRepo) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (r *fakePatientRepo) Update(context.Context, *model.Patient) error { return nil }
func (r *fakePatientRepo) Delete(context.Context, uuid.UUID) error      { return nil }
func (r *fakePatientRepo) List(context.Context, *model.PatientFilters) ([]*model.Patient, error) {
	return nil, nil
}

type fakeCache struct {
	entries     []*model.Appointment
	populated   bool
	invalidated int
}

func (c *fakeCache) Get(context.Context) ([]*model.Appointment, bool) {
	return c.entries, c.populated
}

func (c *fakeCache) Set(_ context.Context, appointments []*model.Appointment) {
	c.entries = appointments
	c.populated = true
}

func (c *fakeCache) Invalidate(context.Context) {
	c.entries = nil
	c.populated = false
	c.invalidated++
}

type recordingEmail struct {
	sent []string
}

func (e *recordingEmail) SendAppointmentConfirmation(_ context.Context, to string, _ *model.Appointment) error {
	e.sent = append(e.sent, to)
	return nil
}

type fixture struct {
	svc         *Service
	repo        *fakeAppointmentRepo
	cache       *fakeCache
	email       *recordingEmail
	serviceID   uuid.UUID
	norteOnlyID uuid.UUID
	patientID   uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	serviceID := uuid.New()
	norteOnlyID := uuid.New()
	patientID := uuid.New()

	serviceRepo := &fakeServiceRepo{services: map[uuid.UUID]*model.Service{}}
	both := &model.Service{Name: "Quiropodia", Duration: 60, Price: 25, AvailableSedes: []string{"norte", "sur"}}
	both.ID = serviceID
	norteOnly := &model.Service{Name: "Estudio de la marcha", Duration: 60, Price: 40, AvailableSedes: []string{"norte"}}
	norteOnly.ID = norteOnlyID
	serviceRepo.services[serviceID] = both
	serviceRepo.services[norteOnlyID] = norteOnly

	patientRepo := &fakePatientRepo{patients: map[uuid.UUID]*model.Patient{}}
	patient := &model.Patient{Name: "Ana Gómez", Email: "ana@example.com"}
	patient.ID = patientID
	patientRepo.patients[patientID] = patient

	repo := newFakeAppointmentRepo()
	cache := &fakeCache{}
	email := &recordingEmail{}

	return &fixture{
		svc:         NewService(repo, serviceRepo, patientRepo, cache, email, testMetrics),
		repo:        repo,
		cache:       cache,
		email:       email,
		serviceID:   serviceID,
		norteOnlyID: norteOnlyID,
		patientID:   patientID,
	}
}

func (f *fixture) createRequest(start time.Time) *model.CreateAppointmentRequest {
	return &model.CreateAppointmentRequest{
		PatientID:      f.patientID,
		ServiceID:      f.serviceID,
		ProfessionalID: uuid.New(),
		Sede:           model.SedeNorte,
		StartTime:      start,
	}
}

func TestCreateAppointment(t *testing.T) {
	f := newFixture(t)
	start := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

	apt, err := f.svc.CreateAppointment(context.Background(), f.createRequest(start))
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusScheduled, apt.Status)
	assert.Equal(t, start, apt.StartTime)
	assert.Equal(t, 1, f.cache.invalidated)
	assert.Equal(t, []string{"ana@example.com"}, f.email.sent)
}

func TestCreateAppointmentOutsideBusinessHours(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name  string
		start time.Time
		ok    bool
	}{
		{"before opening", time.Date(2024, 3, 4, 7, 30, 0, 0, time.UTC), false},
		{"at opening", time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC), true},
		{"last slot", time.Date(2024, 3, 4, 20, 0, 0, 0, time.UTC), true},
		{"after closing", time.Date(2024, 3, 4, 21, 0, 0, 0, time.UTC), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.CreateAppointment(context.Background(), f.createRequest(tc.start))
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrValidation, appErr.Code)
		})
	}
}

func TestCreateAppointmentServiceNotOfferedAtSede(t *testing.T) {
	f := newFixture(t)

	req := f.createRequest(time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC))
	req.ServiceID = f.norteOnlyID
	req.Sede = model.SedeSur

	_, err := f.svc.CreateAppointment(context.Background(), req)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
	assert.Empty(t, f.repo.appointments)
}

func TestUpdateAppointmentStatus(t *testing.T) {
	f := newFixture(t)
	apt, err := f.svc.CreateAppointment(context.Background(), f.createRequest(time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	completed := model.AppointmentStatusCompleted
	updated, err := f.svc.UpdateAppointment(context.Background(), apt.ID, &model.UpdateAppointmentRequest{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, updated.Status)

	// Any valid status is reachable from any other, cancelled included.
	cancelled := model.AppointmentStatusCancelled
	updated, err = f.svc.UpdateAppointment(context.Background(), apt.ID, &model.UpdateAppointmentRequest{Status: &cancelled})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, updated.Status)

	bogus := model.AppointmentStatus("archived")
	_, err = f.svc.UpdateAppointment(context.Background(), apt.ID, &model.UpdateAppointmentRequest{Status: &bogus})
	assert.Error(t, err)
}

func TestUpdateAppointmentRescheduleOutsideHours(t *testing.T) {
	f := newFixture(t)
	apt, err := f.svc.CreateAppointment(context.Background(), f.createRequest(time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	late := time.Date(2024, 3, 4, 22, 0, 0, 0, time.UTC)
	_, err = f.svc.UpdateAppointment(context.Background(), apt.ID, &model.UpdateAppointmentRequest{StartTime: &late})
	require.Error(t, err)

	// The stored appointment keeps its original slot.
	kept, err := f.svc.GetAppointment(context.Background(), apt.ID)
	require.NoError(t, err)
	assert.Equal(t, apt.StartTime, kept.StartTime)
}

func TestDeleteAppointment(t *testing.T) {
	f := newFixture(t)
	apt, err := f.svc.CreateAppointment(context.Background(), f.createRequest(time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteAppointment(context.Background(), apt.ID))
	_, err = f.svc.GetAppointment(context.Background(), apt.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, f.svc.DeleteAppointment(context.Background(), uuid.New()), repository.ErrNotFound)
}

func TestListAppointmentsUsesCacheForUnfilteredList(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateAppointment(context.Background(), f.createRequest(time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	before := f.repo.listCalls
	_, err = f.svc.ListAppointments(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, before+1, f.repo.listCalls)

	// Second unfiltered call is served from cache.
	_, err = f.svc.ListAppointments(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, before+1, f.repo.listCalls)

	// Filtered calls bypass the cache.
	_, err = f.svc.ListAppointments(context.Background(), &model.AppointmentFilters{Sede: model.SedeNorte})
	require.NoError(t, err)
	assert.Equal(t, before+2, f.repo.listCalls)
}

func TestAgendaWeekView(t *testing.T) {
	f := newFixture(t)
	monday := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	_, err := f.svc.CreateAppointment(context.Background(), f.createRequest(monday))
	require.NoError(t, err)

	view, err := f.svc.Agenda(context.Background(), schedule.ViewState{
		Reference: monday,
		Mode:      schedule.ViewWeek,
		Location:  schedule.LocationAll,
	})
	require.NoError(t, err)
	require.NotNil(t, view.Grid)
	assert.Nil(t, view.Month)
	assert.Len(t, view.Grid.Days, 7)

	// 10:00 is the third row; Monday the first column.
	slot := view.Grid.Slots[2][0]
	require.NotNil(t, slot.Appointment)
	assert.Equal(t, monday, slot.Appointment.StartTime)
}

func TestAgendaMonthView(t *testing.T) {
	f := newFixture(t)
	day := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	_, err := f.svc.CreateAppointment(context.Background(), f.createRequest(day))
	require.NoError(t, err)

	view, err := f.svc.Agenda(context.Background(), schedule.ViewState{
		Reference: day,
		Mode:      schedule.ViewMonth,
		Location:  "norte",
	})
	require.NoError(t, err)
	require.NotNil(t, view.Month)
	assert.Nil(t, view.Grid)
	assert.Equal(t, time.March, view.Month.Month)
}

func TestAgendaRejectsInvalidState(t *testing.T) {
	f := newFixture(t)
	ref := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	_, err := f.svc.Agenda(context.Background(), schedule.ViewState{Reference: ref, Mode: "fortnight"})
	assert.Error(t, err)

	_, err = f.svc.Agenda(context.Background(), schedule.ViewState{Reference: ref, Mode: schedule.ViewDay, Location: "centro"})
	assert.Error(t, err)
}
