package mailer

import (
	"fmt"
	"strconv"

	gomail "github.com/go-mail/mail"
	logrus "github.com/sirupsen/logrus"
)

// Mailer sends the transactional account emails. All sends are best
// effort: a delivery failure is logged and never surfaces to the request.
type Mailer struct {
	host        string
	port        int
	user        string
	pass        string
	from        string
	frontendURL string
}

func New(host, port, user, pass, from, frontendURL string) *Mailer {
	p, err := strconv.Atoi(port)
	if err != nil {
		p = 587
	}
	return &Mailer{host: host, port: p, user: user, pass: pass, from: from, frontendURL: frontendURL}
}

func (m *Mailer) enabled() bool {
	return m != nil && m.host != ""
}

// SendBienvenida greets a freshly registered account.
func (m *Mailer) SendBienvenida(email, nombre string) {
	if !m.enabled() {
		return
	}
	body := fmt.Sprintf(
		"<h2>¡Bienvenido a Naxine, %s!</h2>"+
			"<p>Tu cuenta ha sido creada exitosamente. Ya puedes comenzar a usar nuestros servicios.</p>"+
			"<p>Si necesitas acceso como profesional, contacta a un administrador.</p>",
		nombre,
	)
	m.send(email, "¡Bienvenido a Naxine!", body)
}

// SendTokenVerificacion mails the email-confirmation link.
func (m *Mailer) SendTokenVerificacion(email, nombre, token string) {
	if !m.enabled() {
		return
	}
	url := fmt.Sprintf("%s/verify-email/%s", m.frontendURL, token)
	body := fmt.Sprintf(
		"<h2>Hola %s,</h2>"+
			"<p>Gracias por registrarte en Naxine. Para completar tu registro, verifica tu correo:</p>"+
			"<p><a href=%q>Verificar Correo</a></p>"+
			"<p>Este enlace expirará en 24 horas.</p>",
		nombre, url,
	)
	m.send(email, "Verifica tu correo electrónico", body)
}

func (m *Mailer) send(to, subject, htmlBody string) {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	if err := d.DialAndSend(msg); err != nil {
		logrus.WithError(err).WithField("to", to).Error("mailer: delivery failed")
	}
}
