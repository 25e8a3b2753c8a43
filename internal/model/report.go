package model

import "time"

// SummaryReport holds the dashboard KPIs.
type SummaryReport struct {
	TotalPatients      int64           `json:"total_patients"`
	TotalAppointments  int64           `json:"total_appointments"`
	TodayAppointments  int64           `json:"today_appointments"`
	ByStatus           map[string]int64 `json:"by_status"`
	MonthlyIncome      float64         `json:"monthly_income"`
	AppointmentsPerDay []DayCount      `json:"appointments_per_day"`
}

// DayCount is the number of appointments on a single calendar day.
type DayCount struct {
	Day   time.Time `db:"day" json:"day"`
	Count int64     `db:"count" json:"count"`
}

// IncomeReport aggregates completed-appointment income over a period.
type IncomeReport struct {
	From      time.Time       `json:"from"`
	To        time.Time       `json:"to"`
	Total     float64         `json:"total"`
	ByService []ServiceIncome `json:"by_service"`
	BySede    []SedeIncome    `json:"by_sede"`
}

type ServiceIncome struct {
	ServiceID   string  `db:"service_id" json:"service_id"`
	ServiceName string  `db:"service_name" json:"service_name"`
	Count       int64   `db:"count" json:"count"`
	Income      float64 `db:"income" json:"income"`
}

type SedeIncome struct {
	Sede   Sede    `db:"sede" json:"sede"`
	Count  int64   `db:"count" json:"count"`
	Income float64 `db:"income" json:"income"`
}
