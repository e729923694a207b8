package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"

	"github.com/communityroots/volunteer-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

// EmailService defines the interface for sending emails
type EmailService interface {
	SendApplicationApproved(to, volunteerName string) error
	SendApplicationRejected(to, volunteerName string, reason string) error
	SendShiftReminder(to, volunteerName, shiftTitle, shiftLocation, startsAt string) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

type applicationDecisionData struct {
	VolunteerName string
	Reason        string
}

// SendApplicationApproved notifies an applicant that their application was
// approved
func (s *emailServiceImpl) SendApplicationApproved(to, volunteerName string) error {
	data := applicationDecisionData{VolunteerName: volunteerName}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "application_approved.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, "Your volunteer application has been approved", body.String())
}

// SendApplicationRejected notifies an applicant of a rejection
func (s *emailServiceImpl) SendApplicationRejected(to, volunteerName string, reason string) error {
	data := applicationDecisionData{VolunteerName: volunteerName, Reason: reason}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "application_rejected.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, "An update on your volunteer application", body.String())
}

type shiftReminderData struct {
	VolunteerName string
	ShiftTitle    string
	ShiftLocation string
	StartsAt      string
}

// SendShiftReminder reminds a volunteer of an upcoming shift
func (s *emailServiceImpl) SendShiftReminder(to, volunteerName, shiftTitle, shiftLocation, startsAt string) error {
	data := shiftReminderData{
		VolunteerName: volunteerName,
		ShiftTitle:    shiftTitle,
		ShiftLocation: shiftLocation,
		StartsAt:      startsAt,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "shift_reminder.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Reminder: %s", shiftTitle), body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s\r\n", from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	if err := smtp.SendMail(addr, auth, from, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	slog.Info("Email sent", "to", to, "subject", subject)
	return nil
}
