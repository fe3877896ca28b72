package media

import (
	"regexp"
	"strings"
)

var referenceRegex = regexp.MustCompile(`(?:https?://)?(?:www\.)?(?:youtube\.com/(?:[^/\n\s]+/\S+/|(?:v|e(?:mbed)?)/|\S*?[?&]v=)|youtu\.be/)([a-zA-Z0-9_-]{11})`)

// Parser extracts an opaque media id from a URL-like reference string.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p Parser) Parse(reference string) (string, bool) {
	if strings.TrimSpace(reference) == "" {
		return "", false
	}

	match := referenceRegex.FindStringSubmatch(reference)
	if match == nil {
		return "", false
	}

	return match[1], true
}
