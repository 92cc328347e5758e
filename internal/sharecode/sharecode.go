// Package sharecode serializes a full analysis state into a compact
// URL-safe string so an analysis can be shared as a single code.
package sharecode

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rentradar/rentradar/internal/domain"
)

// stateVersion is bumped whenever the encoded shape changes incompatibly.
const stateVersion = 1

// ErrInvalidCode is returned when a code cannot be decoded into a state.
var ErrInvalidCode = errors.New("invalid share code")

// State is the complete shareable analysis: the property set, per-property
// setting overrides, which properties are selected, and projection inputs.
type State struct {
	Version      int                                `json:"v"`
	Properties   []domain.Property                  `json:"properties"`
	Overrides    map[string]domain.SettingsOverride `json:"overrides,omitempty"`
	Selected     []string                           `json:"selected"`
	Settings     domain.CashflowSettings            `json:"settings"`
	Rates        domain.GrowthRates                 `json:"rates"`
	HorizonYears int                                `json:"horizonYears"`
}

// Encode marshals the state, compresses it, and encodes it as URL-safe
// base64 without padding.
func Encode(s State) (string, error) {
	s.Version = stateVersion
	return encodeRaw(s)
}

func encodeRaw(s State) (string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshaling state: %w", err)
	}

	var buf bytes.Buffer
	zw, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("creating compressor: %w", err)
	}
	if _, err := zw.Write(raw); err != nil {
		return "", fmt.Errorf("compressing state: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("flushing compressor: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode reverses Encode. Any malformed input maps to ErrInvalidCode so
// callers can treat all decode failures uniformly.
func Decode(code string) (State, error) {
	if code == "" {
		return State{}, fmt.Errorf("%w: empty", ErrInvalidCode)
	}

	compressed, err := base64.RawURLEncoding.DecodeString(code)
	if err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}

	zr := flate.NewReader(bytes.NewReader(compressed))
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}

	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}
	if s.Version != stateVersion {
		return State{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidCode, s.Version)
	}
	return s, nil
}
