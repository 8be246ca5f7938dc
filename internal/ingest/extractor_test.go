package ingest

import (
	"errors"
	"strings"
	"testing"

	"github.com/tinytelemetry/lambdarelay/internal/model"
)

func TestExtractReport_Fixture(t *testing.T) {
	t.Parallel()
	env := fixtureEnvelope(model.MessageTypeData, fixtureStart, fixtureException)

	report, err := NewPositionalExtractor().ExtractReport(env)
	if err != nil {
		t.Fatalf("ExtractReport: %v", err)
	}
	if report.Message != "'dict' object has no attribute 'lol'" {
		t.Errorf("message = %q", report.Message)
	}
	if report.ExceptionType != "AttributeError" {
		t.Errorf("exception type = %q, want AttributeError", report.ExceptionType)
	}
	if len(report.Frames) != 1 {
		t.Fatalf("frames = %d, want 1", len(report.Frames))
	}
	want := model.Frame{Filename: "/var/task/lambda_function.py", LineNumber: 5, Function: "lambda_handler"}
	if report.Frames[0] != want {
		t.Errorf("frame = %+v, want %+v", report.Frames[0], want)
	}
	if len(report.ExecutionContext) != 0 {
		t.Errorf("execution context = %v, want empty", report.ExecutionContext)
	}
}

func TestExtractReport_ExecutionContext(t *testing.T) {
	t.Parallel()
	env := fixtureEnvelope(model.MessageTypeData, fixtureStart, fixtureException, fixtureEnd, fixtureReport)

	report, err := NewPositionalExtractor().ExtractReport(env)
	if err != nil {
		t.Fatalf("ExtractReport: %v", err)
	}
	want := map[string]string{
		"Duration":        "3.06 ms",
		"Billed Duration": "100 ms",
		"Memory Size":     "128 MB",
		"Max Memory Used": "51 MB",
	}
	if len(report.ExecutionContext) != len(want) {
		t.Fatalf("execution context = %v, want %v", report.ExecutionContext, want)
	}
	for k, v := range want {
		if report.ExecutionContext[k] != v {
			t.Errorf("context[%q] = %q, want %q", k, report.ExecutionContext[k], v)
		}
	}
}

func TestExtractReport_IgnoresEventsAfterReport(t *testing.T) {
	t.Parallel()
	env := fixtureEnvelope(model.MessageTypeData,
		fixtureStart, fixtureException, fixtureEnd, fixtureReport,
		"[ERROR] KeyError: 'second'\nTraceback (most recent call last):\n  File \"/var/task/other.py\", line 9, in handler\n",
	)

	report, err := NewPositionalExtractor().ExtractReport(env)
	if err != nil {
		t.Fatalf("ExtractReport: %v", err)
	}
	if report.ExceptionType != "AttributeError" {
		t.Errorf("exception type = %q, want AttributeError", report.ExceptionType)
	}
	if len(report.Frames) != 1 {
		t.Errorf("frames = %d, want 1", len(report.Frames))
	}
}

func TestExtractReport_MultipleFrames(t *testing.T) {
	t.Parallel()
	exception := "[ERROR] ZeroDivisionError: division by zero\n" +
		"Traceback (most recent call last):\n" +
		"  File \"/var/task/lambda_function.py\", line 12, in lambda_handler\n" +
		"    return compute(event)\n" +
		"  File \"/var/task/calc.py\", line 3, in compute\n" +
		"    return 1 / 0\n"
	env := fixtureEnvelope(model.MessageTypeData, fixtureStart, exception)

	report, err := NewPositionalExtractor().ExtractReport(env)
	if err != nil {
		t.Fatalf("ExtractReport: %v", err)
	}
	if len(report.Frames) != 2 {
		t.Fatalf("frames = %d, want 2", len(report.Frames))
	}
	if report.Frames[1].Filename != "/var/task/calc.py" || report.Frames[1].LineNumber != 3 || report.Frames[1].Function != "compute" {
		t.Errorf("frame[1] = %+v", report.Frames[1])
	}
}

func TestExtractReport_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		events []string
		reason string
	}{
		{
			name:   "too few events",
			events: []string{fixtureStart},
			reason: "log events",
		},
		{
			name:   "empty exception event",
			events: []string{fixtureStart, "\n\n"},
			reason: "empty",
		},
		{
			name:   "missing separator",
			events: []string{fixtureStart, "[ERROR] something broke\nTraceback (most recent call last):\n"},
			reason: "separator",
		},
		{
			name:   "missing traceback marker",
			events: []string{fixtureStart, "[ERROR] KeyError: 'x'\n  File \"/var/task/a.py\", line 1, in h\n"},
			reason: "traceback marker",
		},
		{
			name:   "no frames",
			events: []string{fixtureStart, "[ERROR] KeyError: 'x'\nTraceback (most recent call last):\n"},
			reason: "no frames",
		},
		{
			name:   "frame without commas",
			events: []string{fixtureStart, "[ERROR] KeyError: 'x'\nTraceback (most recent call last):\n  File \"/var/task/a.py\" line 1 in h\n"},
			reason: "comma-separated",
		},
		{
			name:   "frame with bad line number",
			events: []string{fixtureStart, "[ERROR] KeyError: 'x'\nTraceback (most recent call last):\n  File \"/var/task/a.py\", line five, in h\n"},
			reason: "line number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := fixtureEnvelope(model.MessageTypeData, tt.events...)
			report, err := NewPositionalExtractor().ExtractReport(env)
			if report != nil {
				t.Errorf("report = %+v, want nil", report)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("error = %v, want *ParseError", err)
			}
			if !strings.Contains(err.Error(), tt.reason) {
				t.Errorf("error = %q, want it to mention %q", err.Error(), tt.reason)
			}
		})
	}
}
