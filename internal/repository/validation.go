package repository

import (
	"fmt"
	"regexp"
	"strings"
)

var tagNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._/\-]*$`)

// ValidateTagName rejects names git would refuse or that could be read as a flag.
func ValidateTagName(tag string) error {
	if tag == "" {
		return fmt.Errorf("tag name cannot be empty")
	}
	if len(tag) > 255 {
		return fmt.Errorf("tag too long: maximum 255 characters")
	}
	if !tagNameRegex.MatchString(tag) {
		return fmt.Errorf("invalid tag format: %s", tag)
	}
	if strings.Contains(tag, "..") || strings.HasSuffix(tag, ".lock") || strings.HasSuffix(tag, "/") {
		return fmt.Errorf("invalid tag name: %s", tag)
	}
	return nil
}

// validatePattern rejects glob patterns that could be read as a flag.
func validatePattern(pattern string) error {
	if pattern == "" || strings.HasPrefix(pattern, "-") {
		return fmt.Errorf("invalid tag pattern: %q", pattern)
	}
	return nil
}
