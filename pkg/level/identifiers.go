// Package level derives custom level identifiers and renders the text files
// the OpenGOAL build pipeline expects for a new level.
package level

import (
	"fmt"
	"regexp"
	"strings"
)

// ShortTitleLen is the maximum length of the ISO-style short title.
const ShortTitleLen = 8

var (
	titlePattern    = regexp.MustCompile(`^[A-Za-z-]*$`)
	nicknamePattern = regexp.MustCompile(`^[A-Za-z]*$`)
	nonWord         = regexp.MustCompile(`[^\w\s]`)
)

// ValidationError reports user input that cannot be turned into a level.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

// Error implements error.
func (e *ValidationError) Error() string {
	if e.Value == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s (%s: %q)", e.Reason, e.Field, e.Value)
}

// Identifiers are the names derived from the level title and nickname.
type Identifiers struct {
	Long      string // lowercase title, used for file and symbol names
	Short     string // at most 8 word characters, used for ISO naming
	NickLower string
	NickUpper string // DGO bank id
}

// ValidateTitle checks that title contains only letters and dashes.
func ValidateTitle(title string) error {
	if !titlePattern.MatchString(title) {
		return &ValidationError{Field: "title", Value: title, Reason: "Level Title can only contain letters and dashes"}
	}
	return nil
}

// ValidateNickname checks that nickname contains only letters.
func ValidateNickname(nickname string) error {
	if !nicknamePattern.MatchString(nickname) {
		return &ValidationError{Field: "nickname", Value: nickname, Reason: "Level Nickname can only contain letters"}
	}
	return nil
}

// Sanitize validates title and nickname and derives the level identifiers.
func Sanitize(title, nickname string) (Identifiers, error) {
	if err := ValidateTitle(title); err != nil {
		return Identifiers{}, err
	}
	if err := ValidateNickname(nickname); err != nil {
		return Identifiers{}, err
	}

	short := nonWord.ReplaceAllString(title, "")
	if len(short) > ShortTitleLen {
		short = short[:ShortTitleLen]
	}

	return Identifiers{
		Long:      strings.ToLower(title),
		Short:     short,
		NickLower: strings.ToLower(nickname),
		NickUpper: strings.ToUpper(nickname),
	}, nil
}
