package validation

import "strings"

var (
	gmailDomains = map[string]bool{
		"gmail.com":      true,
		"googlemail.com": true,
	}
	outlookDomains = map[string]bool{
		"hotmail.com":   true,
		"hotmail.co.uk": true,
		"hotmail.de":    true,
		"hotmail.fr":    true,
		"hotmail.it":    true,
		"live.com":      true,
		"live.co.uk":    true,
		"msn.com":       true,
		"outlook.com":   true,
		"outlook.de":    true,
		"outlook.fr":    true,
		"passport.com":  true,
	}
	icloudDomains = map[string]bool{
		"icloud.com": true,
		"me.com":     true,
	}
	yahooDomains = map[string]bool{
		"rocketmail.com": true,
		"yahoo.ca":       true,
		"yahoo.co.uk":    true,
		"yahoo.com":      true,
		"yahoo.de":       true,
		"yahoo.fr":       true,
		"yahoo.in":       true,
		"yahoo.it":       true,
		"ymail.com":      true,
	}
)

// NormalizeEmail canonicalizes an already validated address.
// The whole address is lowercased; known providers additionally lose their
// sub-address tags, and Gmail ignores dots in the local part.
func NormalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return strings.ToLower(email)
	}
	local := strings.ToLower(email[:at])
	domain := strings.ToLower(email[at+1:])

	canonical := local
	switch {
	case gmailDomains[domain]:
		canonical = strings.ReplaceAll(cutTag(local, "+"), ".", "")
		domain = "gmail.com"
	case outlookDomains[domain], icloudDomains[domain]:
		canonical = cutTag(local, "+")
	case yahooDomains[domain]:
		canonical = cutTag(local, "-")
	}
	if canonical == "" {
		canonical = local
	}
	return canonical + "@" + domain
}

func cutTag(local, sep string) string {
	before, _, _ := strings.Cut(local, sep)
	return before
}
