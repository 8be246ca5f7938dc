package logparse

import (
	"regexp"
	"strings"
)

// SeverityTagRegex matches a bracketed runtime severity tag at the start of a line,
// e.g. "[ERROR] AttributeError: ...".
var SeverityTagRegex = regexp.MustCompile(`^\[(?i:(TRACE|DEBUG|INFO|WARN|WARNING|ERROR|FATAL|CRITICAL))\]\s*`)

// NormalizeSeverity converts various severity level formats to consistent all caps short forms.
func NormalizeSeverity(severity string) string {
	normalized := strings.ToUpper(strings.TrimSpace(severity))

	switch normalized {
	case "TRACE", "TRAC", "TRC":
		return "TRACE"
	case "DEBUG", "DEBU", "DBG", "DEB":
		return "DEBUG"
	case "INFO", "INFORMATION", "INF":
		return "INFO"
	case "WARN", "WARNING", "WRNG", "WRN":
		return "WARN"
	case "ERROR", "ERR", "ERRO":
		return "ERROR"
	case "FATAL", "FATL", "FTL", "CRITICAL", "CRIT", "CRT":
		return "FATAL"
	default:
		return "INFO"
	}
}

// StripSeverityTag removes a leading "[LEVEL]" tag from line.
// It returns the normalized level ("" when no tag was present) and the remainder.
func StripSeverityTag(line string) (string, string) {
	loc := SeverityTagRegex.FindStringSubmatchIndex(line)
	if loc == nil {
		return "", line
	}
	level := NormalizeSeverity(line[loc[2]:loc[3]])
	return level, line[loc[1]:]
}
