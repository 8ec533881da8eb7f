package endorsements

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
)

// Mailer delivers new-endorsement alerts. The SMTP implementation is
// behind this interface so the service tests can capture sends.
type Mailer interface {
	Send(subject, body string) error
}

type smtpMailer struct {
	config AlertConfig
}

func NewMailer(config AlertConfig) Mailer {
	return smtpMailer{config: config}
}

func (m smtpMailer) Send(subject, body string) error {
	e := email.NewEmail()
	e.From = m.config.From
	e.To = m.config.To
	e.Subject = subject
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%d", m.config.SMTPHost, m.config.SMTPPort)
	var auth smtp.Auth
	if m.config.Username != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.SMTPHost)
	}
	return e.Send(addr, auth)
}

// alertBody renders the plain-text digest of freshly seen
// endorsements, grouped in the order they were found.
func alertBody(fresh []Endorsement) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d new endorsement(s) in the Tennessee governor's race:\n\n", len(fresh))
	for _, e := range fresh {
		fmt.Fprintf(&b, "- %s", e.Endorser)
		if e.Role != "" {
			fmt.Fprintf(&b, " (%s)", e.Role)
		}
		fmt.Fprintf(&b, " endorsed %s\n", e.Candidate)
	}
	return b.String()
}
