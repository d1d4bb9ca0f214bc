package mail

//go:generate go run go.uber.org/mock/mockgen -source=./mail.go -destination=./mocks/mail_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"

	"github.com/rs/zerolog/log"
	goMail "github.com/wneessen/go-mail"
)

const sendTimeout = 15 * time.Second

var ErrMailDisabled = errors.New("mail sender is not configured")

type Mail struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

type mailerImpl struct {
	cfg  *config.Config
	otel otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Mailer {
	if cfg.Mail.Host == "" || cfg.Mail.Username == "" {
		log.Warn().Msg("Mail host or username is empty, outgoing mail is disabled")
	}

	return &mailerImpl{
		cfg:  cfg,
		otel: otel,
	}
}

// Send delivers a plain text message over SMTP. It returns ErrMailDisabled when no SMTP account is configured.
func (m *mailerImpl) Send(ctx context.Context, mail Mail) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelMailScopeName+".Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("mail.subject", mail.Subject)

	if m.cfg.Mail.Host == "" || m.cfg.Mail.Username == "" {
		return ErrMailDisabled
	}

	msg := goMail.NewMsg()

	from := m.cfg.Mail.FromEmail
	if from == "" {
		from = m.cfg.Mail.Username
	}

	if err = msg.FromFormat(m.cfg.Mail.FromName, from); err != nil {
		return fmt.Errorf("failed to set mail sender: %w", err)
	}

	if err = msg.To(mail.To); err != nil {
		return fmt.Errorf("failed to set mail recipient: %w", err)
	}

	msg.Subject(mail.Subject)
	msg.SetBodyString(goMail.TypeTextPlain, mail.Body)

	tlsPolicy := goMail.TLSOpportunistic
	if m.cfg.Mail.EnableSSL {
		tlsPolicy = goMail.TLSMandatory
	}

	client, err := goMail.NewClient(m.cfg.Mail.Host,
		goMail.WithPort(m.cfg.Mail.Port),
		goMail.WithSMTPAuth(goMail.SMTPAuthPlain),
		goMail.WithUsername(m.cfg.Mail.Username),
		goMail.WithPassword(m.cfg.Mail.Password),
		goMail.WithTLSPolicy(tlsPolicy),
		goMail.WithTimeout(sendTimeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}

	if err = client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	log.Info().Str("subject", mail.Subject).Msg("Mail sent")

	return nil
}
