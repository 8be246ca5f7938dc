package ingest

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"
)

func TestDecode_RoundTrip(t *testing.T) {
	t.Parallel()
	inputs := [][]byte{
		[]byte(`{"messageType":"DATA_MESSAGE","logEvents":[]}`),
		[]byte("plain text\nwith lines\n"),
		bytes.Repeat([]byte{0x00, 0xff, 0x10}, 4096),
		{},
	}

	for _, in := range inputs {
		raw, err := Encode(in)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		out, err := Decode(raw)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if !bytes.Equal(out, in) {
			t.Errorf("round trip mismatch: got %d bytes, want %d", len(out), len(in))
		}
	}
}

func TestDecode_Empty(t *testing.T) {
	t.Parallel()
	out, err := Decode("")
	if err != nil {
		t.Fatalf("Decode(\"\") error = %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Errorf("Decode(\"\") = %v, want empty non-nil slice", out)
	}
}

func TestDecode_InvalidBase64(t *testing.T) {
	t.Parallel()
	_, err := Decode("not base64 !!!")
	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("error = %v, want *DecodeError", err)
	}
	if decErr.Stage != "base64" {
		t.Errorf("stage = %q, want base64", decErr.Stage)
	}
}

func TestDecode_NotGzip(t *testing.T) {
	t.Parallel()
	raw := base64.StdEncoding.EncodeToString([]byte("definitely not gzip"))
	_, err := Decode(raw)
	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("error = %v, want *DecodeError", err)
	}
	if decErr.Stage != "gzip" {
		t.Errorf("stage = %q, want gzip", decErr.Stage)
	}
}

func TestDecode_TruncatedStream(t *testing.T) {
	t.Parallel()
	raw := encodeBytes(t, bytes.Repeat([]byte("truncate me "), 512))
	compressed, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	truncated := base64.StdEncoding.EncodeToString(compressed[:len(compressed)/2])

	_, err = Decode(truncated)
	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("error = %v, want *DecodeError", err)
	}
}
