package security

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// RedactedMessage replaces the whole body of a chat message judged to leak
// contact information. No partial redaction: leaking half a phone number is
// still leaking it.
const RedactedMessage = "XXXXXXXXX"

var (
	htmlPolicy       = bluemonday.StrictPolicy()
	digitRunRegex    = regexp.MustCompile(`\d{5,}`)
	spacedDigitRegex = regexp.MustCompile(`(\d\s*){5,}`)

	// Spelled-out digit vocabulary; three or more of these words in one
	// message reads like a dictated phone number.
	digitWords = []string{
		"zero", "one", "two", "three", "four",
		"five", "six", "seven", "eight", "nine",
	}

	// Platform names and handle markers that move the conversation off-site.
	handleKeywords = []string{
		"instagram", "insta", "telegram", "tg",
		"whatsapp", "wa.me", "@",
	}
)

// SanitizeString removes potentially dangerous characters
func SanitizeString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")

	if len(input) > 1000 {
		input = input[:1000]
	}

	return input
}

// SanitizeHTML removes all HTML tags
func SanitizeHTML(input string) string {
	return htmlPolicy.Sanitize(input)
}

// FilterContactInfo applies the chat content policy: if the message looks
// like it carries a phone number or a social handle, the entire body is
// replaced with RedactedMessage, otherwise it is returned untouched.
// Best-effort by design; determined users will get around it.
func FilterContactInfo(msg string) string {
	if msg == "" {
		return msg
	}

	text := strings.ToLower(msg)

	if digitRunRegex.MatchString(text) {
		return RedactedMessage
	}
	if spacedDigitRegex.MatchString(text) {
		return RedactedMessage
	}

	count := 0
	for _, w := range digitWords {
		if strings.Contains(text, w) {
			count++
		}
	}
	if count >= 3 {
		return RedactedMessage
	}

	for _, kw := range handleKeywords {
		if strings.Contains(text, kw) {
			return RedactedMessage
		}
	}

	return msg
}
