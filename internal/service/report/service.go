package report

import (
	"context"
	"fmt"
	"time"

	"github.com/podocentro/clinic-api/internal/model"
	"github.com/podocentro/clinic-api/internal/repository"
)

// Service composes the dashboard and income reports from store aggregates.
type Service struct {
	repo repository.ReportRepository
	now  func() time.Time
}

func NewService(repo repository.ReportRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Summary builds the dashboard KPIs: patient and appointment totals, today's
// load, the status breakdown, the current month's income and the last 30
// days of appointment counts.
func (s *Service) Summary(ctx context.Context) (*model.SummaryReport, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	patients, err := s.repo.CountPatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count patients: %w", err)
	}

	total, err := s.repo.CountAppointments(ctx, time.Time{}, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to count appointments: %w", err)
	}

	todayCount, err := s.repo.CountAppointments(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to count today's appointments: %w", err)
	}

	byStatus, err := s.repo.CountAppointmentsByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count appointments by status: %w", err)
	}

	income, err := s.repo.Income(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to compute monthly income: %w", err)
	}

	perDay, err := s.repo.AppointmentsPerDay(ctx, today.AddDate(0, 0, -30), today.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to load daily appointment counts: %w", err)
	}

	return &model.SummaryReport{
		TotalPatients:      patients,
		TotalAppointments:  total,
		TodayAppointments:  todayCount,
		ByStatus:           byStatus,
		MonthlyIncome:      income,
		AppointmentsPerDay: perDay,
	}, nil
}

// Income aggregates completed-appointment revenue over [from, to), broken
// down by service and by sede. Only completed appointments count; scheduled
// and cancelled ones never contribute.
func (s *Service) Income(ctx context.Context, from, to time.Time) (*model.IncomeReport, error) {
	total, err := s.repo.Income(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to compute income: %w", err)
	}

	byService, err := s.repo.IncomeByService(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to compute income by service: %w", err)
	}

	bySede, err := s.repo.IncomeBySede(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to compute income by sede: %w", err)
	}

	return &model.IncomeReport{
		From:      from,
		To:        to,
		Total:     total,
		ByService: byService,
		BySede:    bySede,
	}, nil
}

// MonthlyIncome is Income over a single calendar month.
func (s *Service) MonthlyIncome(ctx context.Context, year int, month time.Month) (*model.IncomeReport, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	return s.Income(ctx, from, from.AddDate(0, 1, 0))
}
