package ingest

import (
	"strconv"
	"strings"

	"github.com/tinytelemetry/lambdarelay/internal/logparse"
	"github.com/tinytelemetry/lambdarelay/internal/model"
)

const (
	// TracebackMarker opens the frame listing of a Python runtime traceback.
	TracebackMarker = "Traceback (most recent call last):"

	exceptionEventIndex = 1
	reportEventIndex    = 3
	reportLineIndex     = 1
)

// PositionalExtractor reads the report from fixed positions of the Lambda
// runtime log layout: the exception is the first content line of the second
// event, followed by its traceback, and the execution context is the
// tab-delimited second line of the fourth event. Later events are ignored.
type PositionalExtractor struct{}

// NewPositionalExtractor returns the default extractor.
func NewPositionalExtractor() *PositionalExtractor {
	return &PositionalExtractor{}
}

// ExtractReport implements ReportExtractor.
func (PositionalExtractor) ExtractReport(env *model.LogEnvelope) (*model.ParsedReport, error) {
	if env == nil || len(env.LogEvents) <= exceptionEventIndex {
		return nil, parseErrorf("expected at least %d log events", exceptionEventIndex+1)
	}

	lines := logparse.ContentLines(env.LogEvents[exceptionEventIndex].Message)
	if len(lines) == 0 {
		return nil, parseErrorf("exception event is empty")
	}

	excType, message, err := parseExceptionSummary(lines[0])
	if err != nil {
		return nil, err
	}

	frames, err := parseTraceback(lines[1:])
	if err != nil {
		return nil, err
	}

	return &model.ParsedReport{
		Message:          message,
		ExceptionType:    excType,
		Frames:           frames,
		ExecutionContext: parseExecutionContext(env.LogEvents),
	}, nil
}

func parseExceptionSummary(line string) (string, string, error) {
	_, summary := logparse.StripSeverityTag(strings.TrimSpace(line))
	excType, message, ok := strings.Cut(summary, ": ")
	if !ok {
		return "", "", parseErrorf("exception summary %q has no \": \" separator", summary)
	}
	excType = strings.TrimSpace(excType)
	if excType == "" {
		return "", "", parseErrorf("exception summary %q has no exception type", summary)
	}
	return excType, strings.TrimSpace(message), nil
}

func parseTraceback(lines []string) ([]model.Frame, error) {
	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == TracebackMarker {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil, parseErrorf("traceback marker not found")
	}

	var frames []model.Frame
	for _, line := range lines[start:] {
		trimmed := strings.TrimSpace(line)
		// Source excerpt lines sit between frame lines.
		if !strings.HasPrefix(trimmed, "File ") {
			continue
		}
		frame, err := parseFrame(trimmed)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}
	if len(frames) == 0 {
		return nil, parseErrorf("traceback has no frames")
	}
	return frames, nil
}

// parseFrame parses `File "/var/task/lambda_function.py", line 5, in lambda_handler`.
func parseFrame(line string) (model.Frame, error) {
	parts := strings.SplitN(line, ", ", 3)
	if len(parts) != 3 {
		return model.Frame{}, parseErrorf("frame %q is not comma-separated file, line, function", line)
	}

	filename := strings.TrimPrefix(parts[0], "File ")
	filename = strings.Trim(filename, `"`)
	if filename == "" {
		return model.Frame{}, parseErrorf("frame %q has no filename", line)
	}

	lineText, ok := strings.CutPrefix(parts[1], "line ")
	if !ok {
		return model.Frame{}, parseErrorf("frame %q has no line number", line)
	}
	lineno, err := strconv.Atoi(strings.TrimSpace(lineText))
	if err != nil {
		return model.Frame{}, &ParseError{Reason: "frame line number", Err: err}
	}

	function, ok := strings.CutPrefix(parts[2], "in ")
	if !ok {
		return model.Frame{}, parseErrorf("frame %q has no function", line)
	}

	return model.Frame{
		Filename:   filename,
		LineNumber: lineno,
		Function:   strings.TrimSpace(function),
	}, nil
}

func parseExecutionContext(events []model.LogEvent) map[string]string {
	if len(events) <= reportEventIndex {
		return map[string]string{}
	}
	line, ok := logparse.Line(events[reportEventIndex].Message, reportLineIndex)
	if !ok {
		return map[string]string{}
	}
	return logparse.ParseTabFields(line)
}
