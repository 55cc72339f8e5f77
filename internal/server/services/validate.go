package services

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/R3gret/ITPM-Backend/internal/common"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 30
	passwordMinLen = 8
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

const (
	msgUsernameLength   = "Username must be 3-30 characters"
	msgUsernameChars    = "Username can only contain letters, numbers and underscores"
	msgPasswordStrength = "Password must be at least 8 characters with 1 lowercase, 1 uppercase, 1 number, and 1 symbol"
	msgInvalidEmail     = "Invalid email address"
	msgUsernameRequired = "Username is required"
	msgPasswordRequired = "Password is required"
)

func validateUsername(v *common.ValidationError, username string) {
	n := len([]rune(username))
	if n < usernameMinLen || n > usernameMaxLen {
		v.Add("username", msgUsernameLength)
	}
	if !usernamePattern.MatchString(username) {
		v.Add("username", msgUsernameChars)
	}
}

// strongPassword requires the minimum length and at least one lowercase
// letter, uppercase letter, digit and symbol.
func strongPassword(password string) bool {
	if len([]rune(password)) < passwordMinLen {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r) || r == ' ':
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

// validEmail accepts a bare addr-spec whose domain has at least one dot.
func validEmail(email string) bool {
	if email == "" || strings.ContainsAny(email, " <>") {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return false
	}
	at := strings.LastIndexByte(email, '@')
	domain := email[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}

// subaddressSeparators lists providers whose mailboxes ignore a tag after
// the separator.
var subaddressSeparators = map[string]string{
	"gmail.com":   "+",
	"outlook.com": "+",
	"hotmail.com": "+",
	"live.com":    "+",
	"icloud.com":  "+",
	"me.com":      "+",
	"yahoo.com":   "-",
}

// normalizeEmail lowercases the address and folds provider-specific aliases
// into their canonical mailbox: gmail ignores dots and googlemail.com is the
// same domain. The input must already be a valid address.
func normalizeEmail(email string) string {
	email = strings.ToLower(email)
	at := strings.LastIndexByte(email, '@')
	local, domain := email[:at], email[at+1:]

	if domain == "googlemail.com" {
		domain = "gmail.com"
	}
	if sep, ok := subaddressSeparators[domain]; ok {
		if i := strings.Index(local, sep); i > 0 {
			local = local[:i]
		}
	}
	if domain == "gmail.com" {
		local = strings.ReplaceAll(local, ".", "")
	}
	return local + "@" + domain
}

// validWebsite accepts http and https URLs, with or without the scheme.
func validWebsite(raw string) bool {
	if strings.ContainsAny(raw, " \t\n") {
		return false
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := u.Hostname()
	return strings.Contains(host, ".") && !strings.HasPrefix(host, ".") && !strings.HasSuffix(host, ".")
}
