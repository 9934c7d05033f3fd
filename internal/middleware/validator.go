package middleware

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Input validation and sanitization utilities

const (
	maxUsernameLen = 64
	maxFileNameLen = 256
	maxQueryLen    = 256
)

// ValidateUsername checks a Windows account name as typed by the
// operator. Cyrillic names are common, so only structural characters
// are rejected.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return fmt.Errorf("username too long (max %d chars)", maxUsernameLen)
	}

	dangerous := []string{"/", "\\", "..", "\x00", "\n", "\r"}
	for _, d := range dangerous {
		if strings.Contains(username, d) {
			return fmt.Errorf("invalid characters in username")
		}
	}
	return nil
}

// ValidateFileName checks an object key chosen from a listing.
func ValidateFileName(name string) error {
	if name == "" {
		return fmt.Errorf("file name cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxFileNameLen {
		return fmt.Errorf("file name too long (max %d chars)", maxFileNameLen)
	}
	if strings.HasPrefix(name, "/") || strings.HasPrefix(name, "\\") {
		return fmt.Errorf("file name must be relative")
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("path traversal detected")
	}
	if !strings.HasSuffix(name, ".json") {
		return fmt.Errorf("file name must end with .json")
	}

	dangerous := []string{"\x00", "\n", "\r"}
	for _, d := range dangerous {
		if strings.Contains(name, d) {
			return fmt.Errorf("invalid characters in file name")
		}
	}
	return nil
}

// ValidateSessionID validates session ID format (UUID)
func ValidateSessionID(sid string) error {
	if sid == "" {
		return fmt.Errorf("session ID cannot be empty")
	}

	pattern := `^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`
	matched, _ := regexp.MatchString(pattern, strings.ToLower(sid))
	if !matched {
		return fmt.Errorf("invalid session ID format")
	}
	return nil
}

// SanitizeQuery trims a search query and strips control characters.
func SanitizeQuery(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' {
			result.WriteRune(r)
		}
	}

	out := strings.TrimSpace(result.String())
	if utf8.RuneCountInString(out) > maxQueryLen {
		runes := []rune(out)
		out = string(runes[:maxQueryLen])
	}
	return out
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}
