package services

import (
	"errors"
	"regexp"
	"strings"
)

// ErrEmptySpec is returned when the provided OpenAPI content is empty.
var ErrEmptySpec = errors.New("empty OpenAPI document")

// GuessExt guesses the file extension (json or yaml) from the content.
func GuessExt(b []byte) string {
	s := strings.TrimSpace(string(b))
	if strings.HasPrefix(s, "{") {
		return ".json"
	}
	return ".yaml"
}

var filenameRe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// SanitizeFilename makes a name safe to use as a filename.
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = strings.ToLower(name)
	name = filenameRe.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-._")
	if name == "" {
		return ""
	}
	return name
}
