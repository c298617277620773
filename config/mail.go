package config

import "time"

// MailConfig contains outbound email configuration.
// Empty APIKey disables email delivery; invites then surface a warning
// instead of failing.
type MailConfig struct {
	APIKey   string        `env:"API_KEY"`
	From     string        `env:"FROM"     envDefault:"SalonHub <no-reply@salonhub.app>"`
	Endpoint string        `env:"ENDPOINT" envDefault:""`
	Timeout  time.Duration `env:"TIMEOUT"  envDefault:"10s"`
}

// Enabled reports whether outbound email is configured.
func (m MailConfig) Enabled() bool { return m.APIKey != "" }
