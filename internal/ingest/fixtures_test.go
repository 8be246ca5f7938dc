package ingest

import (
	"encoding/json"
	"testing"

	"github.com/tinytelemetry/lambdarelay/internal/model"
)

const (
	fixtureStart     = "START RequestId: 8f507cfc-xmpl-4697-b07a-ac58fc914c95 Version: $LATEST\n"
	fixtureException = "[ERROR] AttributeError: 'dict' object has no attribute 'lol'\n" +
		"Traceback (most recent call last):\n" +
		"  File \"/var/task/lambda_function.py\", line 5, in lambda_handler\n" +
		"    event.lol.lol\n"
	fixtureEnd    = "END RequestId: 8f507cfc-xmpl-4697-b07a-ac58fc914c95\n"
	fixtureReport = "REPORT RequestId: 8f507cfc-xmpl-4697-b07a-ac58fc914c95\n" +
		"Duration: 3.06 ms\tBilled Duration: 100 ms\tMemory Size: 128 MB\tMax Memory Used: 51 MB\t\n"
)

func fixtureEnvelope(messageType string, messages ...string) *model.LogEnvelope {
	env := &model.LogEnvelope{
		Owner:               "123456789012",
		LogGroup:            "/aws/lambda/checkout",
		LogStream:           "2020/08/10/[$LATEST]abcdef",
		SubscriptionFilters: []string{"relay"},
		MessageType:         messageType,
	}
	for i, msg := range messages {
		env.LogEvents = append(env.LogEvents, model.LogEvent{
			ID:        string(rune('a' + i)),
			Timestamp: 1597081264000 + int64(i),
			Message:   msg,
		})
	}
	return env
}

func encodeEnvelope(t *testing.T, env *model.LogEnvelope) string {
	t.Helper()
	data, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return encodeBytes(t, data)
}

func encodeBytes(t *testing.T, data []byte) string {
	t.Helper()
	raw, err := Encode(data)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return raw
}
