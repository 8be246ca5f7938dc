package ingest

import (
	"bytes"
	"encoding/base64"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Decode base64-decodes raw and gunzips the result.
// An empty input yields empty bytes and no error.
func Decode(raw string) ([]byte, error) {
	if raw == "" {
		return []byte{}, nil
	}

	compressed, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, &DecodeError{Stage: "base64", Err: err}
	}
	if len(compressed) == 0 {
		return []byte{}, nil
	}

	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, &DecodeError{Stage: "gzip", Err: err}
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, &DecodeError{Stage: "gzip", Err: err}
	}
	return data, nil
}

// Encode is the inverse of Decode. It is used to build fixtures and by
// callers replaying records.
func Encode(data []byte) (string, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
