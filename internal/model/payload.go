package model

// IngestionPayload is the event body posted to the ingestion endpoint.
type IngestionPayload struct {
	EventID    string                       `json:"event_id"`
	Message    PayloadMessage               `json:"message"`
	Exception  PayloadException             `json:"exception"`
	Stacktrace PayloadStacktrace            `json:"stacktrace"`
	Contexts   map[string]map[string]string `json:"contexts"`
}

type PayloadMessage struct {
	Message string `json:"message"`
}

type PayloadException struct {
	Type string `json:"type"`
}

type PayloadStacktrace struct {
	Frames []PayloadFrame `json:"frames"`
}

type PayloadFrame struct {
	Filename string `json:"filename"`
	Lineno   int    `json:"lineno"`
	Function string `json:"function"`
}
