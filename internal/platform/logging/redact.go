package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

var (
	// mongoCredentialPattern matches connection strings with an embedded password.
	mongoCredentialPattern = regexp.MustCompile(`^mongodb(\+srv)?://[^:/@]+:[^@]+@`)

	// privateKeyPattern matches PEM blocks such as a service-account key.
	privateKeyPattern = regexp.MustCompile(`-----BEGIN [A-Z ]*PRIVATE KEY-----`)

	bearerPattern = regexp.MustCompile(`(?i)^bearer\s+.+$`)
)

// DefaultRedactOptions returns the masq options applied to every json and
// text log line: store credentials, connection strings and tokens.
func DefaultRedactOptions() []masq.Option {
	return []masq.Option{
		masq.WithFieldName("password"),
		masq.WithFieldName("token"),
		masq.WithFieldName("authorization"),
		masq.WithFieldName("cookie"),
		masq.WithFieldName("credentials"),
		masq.WithFieldName("credentials_file"),
		masq.WithFieldName("private_key"),
		masq.WithFieldName("private_key_id"),
		masq.WithFieldName("mongo_uri"),
		masq.WithFieldName("api_key"),

		masq.WithFieldPrefix("secret"),
		masq.WithFieldPrefix("private"),

		masq.WithRegex(mongoCredentialPattern),
		masq.WithRegex(privateKeyPattern),
		masq.WithRegex(bearerPattern),
	}
}

// NewReplaceAttr builds a slog ReplaceAttr func from DefaultRedactOptions
// plus any extra options.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(append(DefaultRedactOptions(), opts...)...)
}
