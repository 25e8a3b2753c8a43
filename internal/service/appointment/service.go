package appointment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/podocentro/clinic-api/internal/email"
	"github.com/podocentro/clinic-api/internal/model"
	"github.com/podocentro/clinic-api/internal/repository"
	"github.com/podocentro/clinic-api/internal/schedule"
	apperrors "github.com/podocentro/clinic-api/pkg/errors"
	"github.com/podocentro/clinic-api/pkg/metrics"
)

// ListCache caches the fully resolved appointment list.
type ListCache interface {
	Get(ctx context.Context) ([]*model.Appointment, bool)
	Set(ctx context.Context, appointments []*model.Appointment)
	Invalidate(ctx context.Context)
}

type Service struct {
	repo        repository.AppointmentRepository
	serviceRepo repository.ServiceRepository
	patientRepo repository.PatientRepository
	cache       ListCache
	emailSvc    email.Service
	metrics     *metrics.Metrics
}

func NewService(
	repo repository.AppointmentRepository,
	serviceRepo repository.ServiceRepository,
	patientRepo repository.PatientRepository,
	cache ListCache,
	emailSvc email.Service,
	m *metrics.Metrics,
) *Service {
	return &Service{
		repo:        repo,
		serviceRepo: serviceRepo,
		patientRepo: patientRepo,
		cache:       cache,
		emailSvc:    emailSvc,
		metrics:     m,
	}
}

// ListAppointments returns appointments ordered by start time. The
// unfiltered list is served from cache when possible; filtered queries go
// straight to the store.
func (s *Service) ListAppointments(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	unfiltered := filters == nil || *filters == (model.AppointmentFilters{})

	if unfiltered && s.cache != nil {
		if appointments, ok := s.cache.Get(ctx); ok {
			return appointments, nil
		}
	}

	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	if unfiltered && s.cache != nil {
		s.cache.Set(ctx, appointments)
	}
	return appointments, nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return apt, nil
}

// CreateAppointment validates the placement against business hours and the
// service catalog before writing. Validation failures never touch the store.
func (s *Service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	status := model.AppointmentStatus(req.Status)
	if req.Status == "" {
		status = model.AppointmentStatusScheduled
	}
	if !status.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid status %q", req.Status), nil)
	}

	if err := schedule.ValidateBusinessHours(req.StartTime); err != nil {
		s.metrics.AppointmentRejections.Inc()
		return nil, apperrors.Validation(err.Error(), err)
	}

	svc, err := s.serviceRepo.Get(ctx, req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve service: %w", err)
	}
	if !svc.OfferedAt(req.Sede) {
		return nil, apperrors.Validation(fmt.Sprintf("service %q is not offered at sede %q", svc.Name, req.Sede), nil)
	}

	apt := &model.Appointment{
		PatientID:      req.PatientID,
		ServiceID:      req.ServiceID,
		ProfessionalID: req.ProfessionalID,
		Sede:           req.Sede,
		StartTime:      req.StartTime,
		Status:         status,
		Notes:          req.Notes,
	}
	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	s.metrics.AppointmentsCreated.Inc()

	// Re-read to pick up the denormalized display names.
	created, err := s.repo.Get(ctx, apt.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload appointment: %w", err)
	}

	s.sendConfirmation(ctx, created)
	return created, nil
}

// UpdateAppointment applies a partial update. Status transitions are
// unconstrained between valid statuses; there are no automatic transitions.
func (s *Service) UpdateAppointment(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	if req.PatientID != nil {
		apt.PatientID = *req.PatientID
	}
	if req.ServiceID != nil {
		apt.ServiceID = *req.ServiceID
	}
	if req.ProfessionalID != nil {
		apt.ProfessionalID = *req.ProfessionalID
	}
	if req.Sede != nil {
		if !req.Sede.Valid() {
			return nil, apperrors.Validation(fmt.Sprintf("invalid sede %q", *req.Sede), nil)
		}
		apt.Sede = *req.Sede
	}
	if req.StartTime != nil {
		if err := schedule.ValidateBusinessHours(*req.StartTime); err != nil {
			s.metrics.AppointmentRejections.Inc()
			return nil, apperrors.Validation(err.Error(), err)
		}
		apt.StartTime = *req.StartTime
	}
	if req.Status != nil {
		if !model.ValidStatusTransition(apt.Status, *req.Status) {
			return nil, apperrors.Validation(fmt.Sprintf("invalid status %q", *req.Status), nil)
		}
		if apt.Status != *req.Status {
			s.metrics.StatusTransitions.WithLabelValues(string(*req.Status)).Inc()
		}
		apt.Status = *req.Status
	}
	if req.Notes != nil {
		apt.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}

	updated, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload appointment: %w", err)
	}
	return updated, nil
}

// DeleteAppointment removes the appointment permanently. Any status may be
// deleted; the clinic keeps no tombstones.
func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	s.metrics.AppointmentsDeleted.Inc()
	return nil
}

// AgendaView is the rendered scheduling grid for one navigation state.
type AgendaView struct {
	Mode     schedule.ViewMode   `json:"mode"`
	Location string              `json:"location"`
	Grid     *schedule.Grid      `json:"grid,omitempty"`
	Month    *schedule.MonthGrid `json:"month,omitempty"`
}

// Agenda fetches the appointments visible in the view state and lays them
// onto the day/week/month grid.
func (s *Service) Agenda(ctx context.Context, state schedule.ViewState) (*AgendaView, error) {
	if !state.Mode.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid view mode %q", state.Mode), nil)
	}
	if state.Location != schedule.LocationAll && state.Location != "" && !model.Sede(state.Location).Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid location %q", state.Location), nil)
	}

	from, to := schedule.ViewRange(state)
	appointments, err := s.ListAppointments(ctx, &model.AppointmentFilters{From: from, To: to})
	if err != nil {
		return nil, err
	}

	view := &AgendaView{Mode: state.Mode, Location: state.Location}
	if state.Location == "" {
		view.Location = schedule.LocationAll
	}

	if state.Mode == schedule.ViewMonth {
		view.Month = schedule.BuildMonth(state, appointments)
	} else {
		view.Grid = schedule.BuildGrid(state, appointments)
	}
	return view, nil
}

// sendConfirmation emails the patient. Failures are logged and counted,
// never surfaced: the appointment is already booked.
func (s *Service) sendConfirmation(ctx context.Context, apt *model.Appointment) {
	if s.emailSvc == nil {
		return
	}

	patient, err := s.patientRepo.Get(ctx, apt.PatientID)
	if err != nil || patient.Email == "" {
		return
	}

	if err := s.emailSvc.SendAppointmentConfirmation(ctx, patient.Email, apt); err != nil {
		s.metrics.ReminderFailures.Inc()
		log.Warn().Err(err).Str("appointment_id", apt.ID.String()).Msg("failed to send confirmation email")
		return
	}
	s.metrics.RemindersSent.Inc()
}
