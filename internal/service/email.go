package service

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *emailService) SendIssueConfirmation(ctx context.Context, email, name, bookTitle string, dueDate time.Time) error {
	body := fmt.Sprintf("Hello %s,\n\nThe book %q has been issued to you.\nPlease return it by %s.\n\nBest regards,\nThe School Library",
		name, bookTitle, dueDate.Format("2006-01-02"))
	return s.send(email, fmt.Sprintf("Book Issued - %s", bookTitle), body)
}

func (s *emailService) SendReturnConfirmation(ctx context.Context, email, name, bookTitle string, fineCents int64) error {
	body := fmt.Sprintf("Hello %s,\n\nYour return of %q has been recorded.", name, bookTitle)
	if fineCents > 0 {
		body += fmt.Sprintf("\n\nAn outstanding fine of %.2f remains on this loan.", float64(fineCents)/100)
	}
	body += "\n\nBest regards,\nThe School Library"
	return s.send(email, fmt.Sprintf("Book Returned - %s", bookTitle), body)
}

func (s *emailService) SendOverdueNotice(ctx context.Context, email, name, bookTitle string, daysOverdue int32, pendingFineCents int64) error {
	body := fmt.Sprintf("Hello %s,\n\nThe book %q is %d day(s) overdue.\nAccrued fine so far: %.2f.\nPlease return it as soon as possible.\n\nBest regards,\nThe School Library",
		name, bookTitle, daysOverdue, float64(pendingFineCents)/100)
	return s.send(email, fmt.Sprintf("Overdue Notice - %s", bookTitle), body)
}
