package user

import (
	"regexp"
	"strings"
)

// local@domain.tld with no whitespace and a dot somewhere after the @.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type User struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"` // never expose hash in JSON
	Preferences  []string `json:"preferences"`
}

func NormalizeEmail(email string) string {
	return strings.ToLower(email)
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// PreferencesOrEmpty never returns nil so JSON renders [] instead of null.
func (u User) PreferencesOrEmpty() []string {
	if u.Preferences == nil {
		return []string{}
	}
	return u.Preferences
}
