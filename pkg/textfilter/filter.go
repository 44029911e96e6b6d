// Package textfilter checks and tidies the names children type in.
package textfilter

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ErrEmptyName   = errors.New("name cannot be empty")
	ErrNameTooLong = errors.New("name is too long")
	ErrRudeName    = errors.New("please choose a kinder name")
	ErrBadRunes    = errors.New("name can only use letters, numbers, spaces, ' and -")
)

// Words a name may not contain as a whole word.
var blockedWords = []string{
	"fuck", "shit", "damn", "hell", "ass", "bitch", "bastard", "crap",
	"piss", "cock", "dick", "pussy", "tits", "boobs", "whore", "slut",
	"fag", "retard", "nigger", "nigga", "spic", "chink", "kike",
	"motherfucker", "goddamn", "asshole", "dumbass", "jackass",
	"bullshit", "dipshit", "shithead", "dickhead", "prick", "douche",
	"poop", "stupid", "idiot", "dummy", "loser", "kill",
}

var spaces = regexp.MustCompile(`\s+`)

// NameFilter validates player and pet names.
type NameFilter struct {
	maxLen  int
	blocked []*regexp.Regexp
}

// NewNameFilter builds a filter that accepts names up to maxLen characters.
func NewNameFilter(maxLen int) *NameFilter {
	f := &NameFilter{maxLen: maxLen}
	for _, w := range blockedWords {
		f.blocked = append(f.blocked, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(w)+`\b`))
	}
	return f
}

// Normalize trims a name and collapses runs of whitespace.
func Normalize(name string) string {
	return spaces.ReplaceAllString(strings.TrimSpace(name), " ")
}

// ContainsProfanity reports whether text has a blocked word in it.
func (f *NameFilter) ContainsProfanity(text string) bool {
	// Underscores and digits count as word characters, so split them out first.
	probe := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return ' '
	}, text)
	for _, re := range f.blocked {
		if re.MatchString(probe) {
			return true
		}
	}
	return false
}

// Clean normalizes and validates a name, returning the version to store.
func (f *NameFilter) Clean(name string) (string, error) {
	name = Normalize(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if utf8.RuneCountInString(name) > f.maxLen {
		return "", ErrNameTooLong
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' ' && r != '\'' && r != '-' {
			return "", ErrBadRunes
		}
	}
	if f.ContainsProfanity(name) {
		return "", ErrRudeName
	}
	return name, nil
}

// DisplayName capitalizes an all-lowercase name. Names with any capitals are
// left as typed.
func (f *NameFilter) DisplayName(name string) string {
	if strings.ToLower(name) != name {
		return name
	}
	// Casers keep state, so each call gets its own.
	return cases.Title(language.English).String(name)
}
