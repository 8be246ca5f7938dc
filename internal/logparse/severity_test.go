package logparse

import "testing"

func TestNormalizeSeverity(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Standard forms
		{"TRACE", "TRACE"}, {"DEBUG", "DEBUG"}, {"INFO", "INFO"},
		{"WARN", "WARN"}, {"ERROR", "ERROR"}, {"FATAL", "FATAL"},
		// Variants
		{"WARNING", "WARN"}, {"ERR", "ERROR"}, {"CRITICAL", "FATAL"},
		// Case insensitive
		{"error", "ERROR"}, {"warning", "WARN"},
		// Unknown defaults to INFO
		{"", "INFO"}, {"foo", "INFO"},
		// Whitespace
		{"  INFO  ", "INFO"}, {"\tWARN\t", "WARN"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := NormalizeSeverity(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizeSeverity(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStripSeverityTag(t *testing.T) {
	tests := []struct {
		line      string
		wantLevel string
		wantRest  string
	}{
		{"[ERROR] AttributeError: boom", "ERROR", "AttributeError: boom"},
		{"[error]\tKeyError: 'x'", "ERROR", "KeyError: 'x'"},
		{"[WARNING] low memory", "WARN", "low memory"},
		{"AttributeError: boom", "", "AttributeError: boom"},
		{"[NOTICE] boom", "", "[NOTICE] boom"},
		{"prefix [ERROR] boom", "", "prefix [ERROR] boom"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			level, rest := StripSeverityTag(tt.line)
			if level != tt.wantLevel {
				t.Errorf("level = %q, want %q", level, tt.wantLevel)
			}
			if rest != tt.wantRest {
				t.Errorf("rest = %q, want %q", rest, tt.wantRest)
			}
		})
	}
}
