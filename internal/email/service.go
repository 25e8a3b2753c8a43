package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/podocentro/clinic-api/internal/model"
)

type Service interface {
	SendAppointmentConfirmation(ctx context.Context, to string, apt *model.Appointment) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg Config) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendAppointmentConfirmation(_ context.Context, to string, apt *model.Appointment) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Confirmación de cita")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hola %s,\n\nSu cita de %s está confirmada para el %s en la sede %s.\n\nPodocentro",
		apt.PatientName,
		apt.ServiceName,
		apt.StartTime.Format("02/01/2006 15:04"),
		apt.Sede,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}

// NoopService is used when SMTP is not configured.
type NoopService struct{}

func (NoopService) SendAppointmentConfirmation(context.Context, string, *model.Appointment) error {
	return nil
}
