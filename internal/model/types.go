package model

// LogRecord is one opaque record of a webhook batch. Data holds base64-encoded,
// gzip-compressed bytes of a LogEnvelope.
type LogRecord struct {
	Data string `json:"data"`
}

// FirehoseRequest is the inbound webhook body of a Firehose-style HTTP delivery.
type FirehoseRequest struct {
	RequestID string      `json:"requestId"`
	Timestamp int64       `json:"timestamp"`
	Records   []LogRecord `json:"records"`
}

// FirehoseResponse acknowledges a delivery back to the upstream pipeline.
type FirehoseResponse struct {
	RequestID    string `json:"requestId"`
	Timestamp    int64  `json:"timestamp"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// Message types carried by a CloudWatch Logs subscription envelope.
const (
	MessageTypeData    = "DATA_MESSAGE"
	MessageTypeControl = "CONTROL_MESSAGE"
)

// LogEnvelope is one decompressed unit of delivered log data.
type LogEnvelope struct {
	Owner               string     `json:"owner"`
	LogGroup            string     `json:"logGroup"`
	LogStream           string     `json:"logStream"`
	SubscriptionFilters []string   `json:"subscriptionFilters"`
	MessageType         string     `json:"messageType"`
	LogEvents           []LogEvent `json:"logEvents"`
}

// IsData reports whether the envelope carries log data rather than a
// reachability probe.
func (e *LogEnvelope) IsData() bool {
	return e != nil && e.MessageType == MessageTypeData
}

// LogEvent is a single log line entry inside an envelope.
type LogEvent struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Message   string `json:"message"`
}

// Frame is one stack frame extracted from a runtime traceback.
type Frame struct {
	Filename   string
	LineNumber int
	Function   string
}

// ParsedReport holds the fields extracted from one data envelope.
type ParsedReport struct {
	Message          string
	ExceptionType    string
	Frames           []Frame
	ExecutionContext map[string]string
}

// Target addresses one project on the ingestion endpoint.
type Target struct {
	ProjectID string `yaml:"project-id"`
	PublicKey string `yaml:"public-key"`
}

// IsZero reports whether no project has been set.
func (t Target) IsZero() bool {
	return t.ProjectID == "" && t.PublicKey == ""
}
