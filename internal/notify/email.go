package notify

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/realchief/RenderShotPanel/internal/config"
)

// Mailer sends plain-text notification emails over SMTP. With no host
// configured every call is a no-op.
type Mailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	site     string
	domain   string

	// swapped out in tests
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPass,
		from:     cfg.SMTPFrom,
		site:     cfg.SiteName,
		domain:   cfg.SiteDomain,
		sendMail: smtp.SendMail,
	}
}

func (m *Mailer) Send(msg *EmailMessage) {
	if m == nil || m.host == "" || msg == nil || msg.To == "" {
		return
	}

	var body strings.Builder
	fmt.Fprintf(&body, "From: %s <%s>\r\n", m.site, m.from)
	fmt.Fprintf(&body, "To: %s\r\n", msg.To)
	fmt.Fprintf(&body, "Subject: %s\r\n\r\n", msg.Subject)
	body.WriteString(msg.Body)
	if msg.ActionURL != "" {
		fmt.Fprintf(&body, "\r\n\r\n%s: https://%s%s\r\n", msg.ActionText, m.domain, msg.ActionURL)
	}

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	addr := m.host + ":" + m.port
	if err := m.sendMail(addr, auth, m.from, []string{msg.To}, []byte(body.String())); err != nil {
		log.Printf("[mail] send to %s failed: %v", msg.To, err)
	}
}
