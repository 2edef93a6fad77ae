// Package redact scrubs secrets and personal data out of strings before they
// are written to logs. Store and driver errors can echo connection strings,
// password hashes, SQL fragments and duplicate-key values verbatim.
package redact

import "regexp"

// Placeholders substituted for redacted content.
const (
	Placeholder           = "[REDACTED]"
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	HashPlaceholder       = "[REDACTED_HASH]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
	SQLPlaceholder        = "[REDACTED_SQL]"
	PathPlaceholder       = "[REDACTED_PATH]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules run in order. Connection strings go before emails because the
// user:pass@host part of a URL looks like an address.
var rules = []rule{
	{
		regexp.MustCompile(`(?i)(postgres(?:ql)?|mongodb(?:\+srv)?|pgx)://[^@\s]+@`),
		CredentialPlaceholder,
	},
	{
		regexp.MustCompile(`\$2[abxy]?\$\d{2}\$[./A-Za-z0-9]{53}`),
		HashPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)(password|passwd|pwd|secret|text)(\s*[=:]\s*['"]?)[^'"&\s,}]{3,}`),
		CredentialPlaceholder,
	},
	{
		regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		EmailPlaceholder,
	},
	{
		regexp.MustCompile(
			`(?i)\b(SELECT|INSERT|UPDATE|DELETE)\b[\s\S]+?\b(FROM|INTO|SET)\b[^;]*`,
		),
		SQLPlaceholder,
	},
	{
		regexp.MustCompile(`(/[\w.-]+){2,}`),
		PathPlaceholder,
	},
}

// String returns s with every sensitive fragment replaced by a placeholder.
func String(s string) string {
	if s == "" {
		return s
	}
	for _, r := range rules {
		s = r.pattern.ReplaceAllString(s, r.placeholder)
	}
	return s
}

// Error redacts err.Error(). A nil error yields "".
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
