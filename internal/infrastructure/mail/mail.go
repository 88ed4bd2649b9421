// Package mail delivers notifications over SMTP or the Resend API. Each
// alias sends from <alias>@<domain>.
package mail

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/oladokun-o/engine/internal/core/ports"
	"github.com/oladokun-o/engine/internal/infrastructure/config"
)

// Address returns the sender address for alias at domain.
func Address(alias ports.Alias, domain string) string {
	return string(alias) + "@" + domain
}

// NewMailer picks the delivery backend named by cfg.Provider.
func NewMailer(cfg config.MailConfig, log zerolog.Logger) (ports.Mailer, error) {
	switch cfg.Provider {
	case config.MailResend:
		log.Info().Str("provider", cfg.Provider).Msg("using resend mailer")
		return NewResendMailer(cfg.ResendAPIKey, cfg.Domain), nil
	case config.MailSMTP, "":
		log.Info().Str("provider", config.MailSMTP).Str("host", cfg.SMTPHost).Int("port", cfg.SMTPPort).Msg("using smtp mailer")
		return NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPPassword, cfg.Domain), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}
}
