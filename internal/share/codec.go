package share

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/mohammad-safakhou/qbit/models"
)

// Stored record layout. Version 1 wraps base64(gzip(briefing JSON)) in
// a small envelope so readers dispatch on the stored version instead
// of guessing. Two legacy layouts predate the envelope and remain
// readable: raw briefing JSON, and a bare base64+gzip string.
const codecVersion = 1

type envelope struct {
	Version int    `json:"version"`
	Payload string `json:"payload"`
}

// Encode serializes a briefing for storage: JSON, gzip, base64,
// versioned envelope. Annotation explanations routinely push the raw
// document past the KV backend's practical per-value size, hence the
// compression.
func Encode(b *models.Briefing) (string, error) {
	raw, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("marshal briefing: %w", err)
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return "", fmt.Errorf("compress briefing: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("compress briefing: %w", err)
	}

	env := envelope{
		Version: codecVersion,
		Payload: base64.StdEncoding.EncodeToString(buf.Bytes()),
	}
	out, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("marshal envelope: %w", err)
	}
	return string(out), nil
}

// Decode reverses Encode. Any failure (bad base64, bad gzip stream,
// a payload that is not a briefing) is returned as an error, never as
// partial data. Decode(Encode(x)) == x for every valid briefing.
func Decode(stored string) (*models.Briefing, error) {
	var env envelope
	if err := json.Unmarshal([]byte(stored), &env); err == nil && env.Version > 0 {
		switch env.Version {
		case codecVersion:
			return decodeCompressed(env.Payload)
		default:
			return nil, fmt.Errorf("unknown record version %d", env.Version)
		}
	}

	// Legacy layout 1: the briefing stored as plain JSON ({content}
	// projections included; their sources decode as empty).
	if strings.HasPrefix(strings.TrimSpace(stored), "{") {
		return decodeRawJSON(stored)
	}

	// Legacy layout 2: bare base64(gzip(JSON)) with no envelope.
	return decodeCompressed(stored)
}

func decodeCompressed(payload string) (*models.Briefing, error) {
	compressed, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("open gzip stream: %w", err)
	}
	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	if err := zr.Close(); err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	return decodeRawJSON(string(raw))
}

func decodeRawJSON(raw string) (*models.Briefing, error) {
	var b models.Briefing
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("unmarshal briefing: %w", err)
	}
	if b.Sources == nil {
		b.Sources = []models.StorySource{}
	}
	return &b, nil
}
