package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

var (
	// Connection URLs carrying a password, e.g. postgres://user:pw@host/db.
	credentialURLPattern = regexp.MustCompile(`^[a-z][a-z0-9+.-]*://[^:/@\s]+:[^@\s]+@`)

	// Key/value DSNs with a password field, e.g. "host=db password=pw".
	keyValueDSNPattern = regexp.MustCompile(`(?i)(^|\s)password=\S+`)

	bearerPattern = regexp.MustCompile(`(?i)^bearer\s+.+$`)
)

// DefaultRedactOptions returns the masq options applied to every handler.
// Store DSNs are the main secret this service handles; they show up when a
// store description or a load error is logged.
//
// Extend the list per deployment:
//
//	opts := append(logging.DefaultRedactOptions(), masq.WithFieldName("ClientCert"))
func DefaultRedactOptions() []masq.Option {
	return []masq.Option{
		masq.WithFieldName("DSN"),
		masq.WithFieldName("dsn"),
		masq.WithFieldName("password"),
		masq.WithFieldName("Password"),
		masq.WithFieldName("token"),
		masq.WithFieldName("authorization"),

		masq.WithFieldPrefix("secret"),
		masq.WithFieldPrefix("Secret"),

		masq.WithRegex(credentialURLPattern),
		masq.WithRegex(keyValueDSNPattern),
		masq.WithRegex(bearerPattern),
	}
}

// NewReplaceAttr returns a slog ReplaceAttr func that redacts secrets using
// DefaultRedactOptions plus opts.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(append(DefaultRedactOptions(), opts...)...)
}
