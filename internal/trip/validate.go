package trip

import (
	"net/url"
	"regexp"
)

// emailPattern accepts the usual local@domain.tld shape. No network or
// deliverability check; syntax only.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidURL reports whether s parses as an absolute URL with a scheme and
// host.
func ValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}
