package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

type AppointmentNotice struct {
	ToEmail         string
	PatientName     string
	DoctorName      string
	DoctorSpecialty string
	Slot            string
	Symptoms        string
}

type IEmailService interface {
	SendAppointmentConfirmation(notice AppointmentNotice) error
	SendAppointmentCancellation(notice AppointmentNotice) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderName string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: username,
		senderName:  senderName,
	}
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send %q to %s: %w", subject, to, err)
	}
	return nil
}

// Patient-supplied fields are escaped by html/template.
var (
	confirmationTmpl = template.Must(template.New("confirmation").Parse(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Your appointment is booked</h2>
			<p>Hi {{.PatientName}},</p>
			<p>You are scheduled with <strong>{{.DoctorName}}</strong> ({{.DoctorSpecialty}}) on <strong>{{.Slot}}</strong>.</p>
			<p>Reason for visit: {{.Symptoms}}</p>
			<p>If your symptoms get worse before then, call emergency services (911).</p>
		</div>
	`))

	cancellationTmpl = template.Must(template.New("cancellation").Parse(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Your appointment was cancelled</h2>
			<p>Hi {{.PatientName}},</p>
			<p>Your visit with <strong>{{.DoctorName}}</strong> on <strong>{{.Slot}}</strong> has been cancelled.</p>
			<p>You can book a new slot at any time.</p>
		</div>
	`))
)

func render(tmpl *template.Template, n AppointmentNotice) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, n); err != nil {
		return "", fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

func (s *emailService) SendAppointmentConfirmation(n AppointmentNotice) error {
	body, err := render(confirmationTmpl, n)
	if err != nil {
		return err
	}
	return s.send(n.ToEmail, "Appointment Confirmation", body)
}

func (s *emailService) SendAppointmentCancellation(n AppointmentNotice) error {
	body, err := render(cancellationTmpl, n)
	if err != nil {
		return err
	}
	return s.send(n.ToEmail, "Appointment Cancelled", body)
}
