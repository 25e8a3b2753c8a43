package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/podocentro/clinic-api/internal/model"
)

func (r *reportRepository) CountPatients(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM patients`); err != nil {
		return 0, fmt.Errorf("failed to count patients: %w", err)
	}
	return count, nil
}

// CountAppointments counts appointments starting in [from, to). Zero bounds
// mean unbounded.
func (r *reportRepository) CountAppointments(ctx context.Context, from, to time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM appointments WHERE ($1 OR start_time >= $2) AND ($3 OR start_time < $4)`
	var count int64
	if err := r.db.GetContext(ctx, &count, query, from.IsZero(), from, to.IsZero(), to); err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}

func (r *reportRepository) CountAppointmentsByStatus(ctx context.Context) (map[string]int64, error) {
	query := `SELECT status, COUNT(*) AS count FROM appointments GROUP BY status`

	rows := []struct {
		Status string `db:"status"`
		Count  int64  `db:"count"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to count appointments by status: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *reportRepository) AppointmentsPerDay(ctx context.Context, from, to time.Time) ([]model.DayCount, error) {
	query := `
		SELECT date_trunc('day', start_time) AS day, COUNT(*) AS count
		FROM appointments
		WHERE start_time >= $1 AND start_time < $2
		GROUP BY day
		ORDER BY day ASC
	`
	var counts []model.DayCount
	if err := r.db.SelectContext(ctx, &counts, query, from, to); err != nil {
		return nil, fmt.Errorf("failed to count appointments per day: %w", err)
	}
	return counts, nil
}

func (r *reportRepository) Income(ctx context.Context, from, to time.Time) (float64, error) {
	// Income is the price of the referenced service for each completed
	// appointment; appointments carry no price of their own.
	query := `
		SELECT COALESCE(SUM(s.price), 0)
		FROM appointments a
		JOIN services s ON s.id = a.service_id
		WHERE a.status = 'completed' AND a.start_time >= $1 AND a.start_time < $2
	`
	var total float64
	if err := r.db.GetContext(ctx, &total, query, from, to); err != nil {
		return 0, fmt.Errorf("failed to sum income: %w", err)
	}
	return total, nil
}

func (r *reportRepository) IncomeByService(ctx context.Context, from, to time.Time) ([]model.ServiceIncome, error) {
	query := `
		SELECT s.id AS service_id, s.name AS service_name,
			   COUNT(*) AS count, COALESCE(SUM(s.price), 0) AS income
		FROM appointments a
		JOIN services s ON s.id = a.service_id
		WHERE a.status = 'completed' AND a.start_time >= $1 AND a.start_time < $2
		GROUP BY s.id, s.name
		ORDER BY income DESC
	`
	var incomes []model.ServiceIncome
	if err := r.db.SelectContext(ctx, &incomes, query, from, to); err != nil {
		return nil, fmt.Errorf("failed to aggregate income by service: %w", err)
	}
	return incomes, nil
}

func (r *reportRepository) IncomeBySede(ctx context.Context, from, to time.Time) ([]model.SedeIncome, error) {
	query := `
		SELECT a.sede, COUNT(*) AS count, COALESCE(SUM(s.price), 0) AS income
		FROM appointments a
		JOIN services s ON s.id = a.service_id
		WHERE a.status = 'completed' AND a.start_time >= $1 AND a.start_time < $2
		GROUP BY a.sede
		ORDER BY a.sede ASC
	`
	var incomes []model.SedeIncome
	if err := r.db.SelectContext(ctx, &incomes, query, from, to); err != nil {
		return nil, fmt.Errorf("failed to aggregate income by sede: %w", err)
	}
	return incomes, nil
}
