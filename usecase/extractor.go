package usecase

import (
	"regexp"
	"strings"
)

// Extraction patterns for the two required fields. A pattern match is taken
// as-is; there is no registry lookup behind it.
var (
	patternCode = regexp.MustCompile(`[A-Z]{2,10}-\d{1,4}`)
	patternDeed = regexp.MustCompile(`(โฉนด|น\.ส\.3)\s*\d+`)
)

// helpCommands are matched exactly after trimming and lowercasing.
var helpCommands = []string{"help", "/help", "วิธีใช้", "ใช้งานยังไง"}

// ExtractionResult holds the fields pulled out of free text. Empty string
// means absent — a normal outcome, not a failure.
type ExtractionResult struct {
	Code string
	Deed string
}

// Complete reports whether both required fields were found.
func (r ExtractionResult) Complete() bool {
	return r.Code != "" && r.Deed != ""
}

// ExtractFields runs both patterns independently over the same input and
// keeps the first match of each. Pure function; calling it twice on the same
// string yields identical results.
func ExtractFields(text string) ExtractionResult {
	return ExtractionResult{
		Code: patternCode.FindString(text),
		Deed: patternDeed.FindString(text),
	}
}

// IsHelpCommand reports whether text is one of the fixed help commands,
// case-insensitive and whitespace-trimmed.
func IsHelpCommand(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, cmd := range helpCommands {
		if t == cmd {
			return true
		}
	}
	return false
}
