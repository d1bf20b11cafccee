package security

import (
	"testing"
)

func TestFilterContactInfo(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		redacted bool
	}{
		{
			name:     "Plain message",
			input:    "hello, nice to meet you",
			redacted: false,
		},
		{
			name:     "Short number is fine",
			input:    "let's meet at 5pm",
			redacted: false,
		},
		{
			name:     "Consecutive digits",
			input:    "call me 9876543210",
			redacted: true,
		},
		{
			name:     "Digits split by spaces",
			input:    "call me 98765 43210",
			redacted: true,
		},
		{
			name:     "Spelled out digits",
			input:    "nine eight seven then the rest",
			redacted: true,
		},
		{
			name:     "Two digit words only",
			input:    "one day or two days",
			redacted: false,
		},
		{
			name:     "Instagram keyword",
			input:    "find me on Instagram",
			redacted: true,
		},
		{
			name:     "Handle marker",
			input:    "dm @handle",
			redacted: true,
		},
		{
			name:     "wa.me link",
			input:    "wa.me/123",
			redacted: true,
		},
		{
			name:     "Empty message",
			input:    "",
			redacted: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterContactInfo(tt.input)

			if tt.redacted && got != RedactedMessage {
				t.Errorf("FilterContactInfo(%q) = %q, want redacted", tt.input, got)
			}
			if !tt.redacted && got != tt.input {
				t.Errorf("FilterContactInfo(%q) = %q, want unchanged", tt.input, got)
			}
		})
	}
}

func TestSanitizeHTML(t *testing.T) {
	got := SanitizeHTML("<script>alert(1)</script>hello")
	if got != "hello" {
		t.Errorf("SanitizeHTML() = %q, want %q", got, "hello")
	}
}

func TestSanitizeString(t *testing.T) {
	got := SanitizeString("  hello\x00world  ")
	if got != "helloworld" {
		t.Errorf("SanitizeString() = %q, want %q", got, "helloworld")
	}
}
