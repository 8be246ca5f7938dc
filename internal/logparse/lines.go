package logparse

import "strings"

// ContentLines splits a multi-line log message and drops blank lines.
func ContentLines(message string) []string {
	raw := strings.Split(strings.ReplaceAll(message, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Line returns the n-th raw line (zero based) of message, blank lines included.
func Line(message string, n int) (string, bool) {
	raw := strings.Split(strings.ReplaceAll(message, "\r\n", "\n"), "\n")
	if n < 0 || n >= len(raw) {
		return "", false
	}
	return raw[n], true
}

// ParseTabFields parses a tab-delimited "Key: Value" line into a map.
// Cells without a ": " separator or with an empty key are skipped.
func ParseTabFields(line string) map[string]string {
	fields := make(map[string]string)
	for _, cell := range strings.Split(line, "\t") {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		key, value, ok := strings.Cut(cell, ": ")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		fields[key] = strings.TrimSpace(value)
	}
	return fields
}
