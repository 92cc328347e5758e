package sharecode

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rentradar/rentradar/internal/domain"
)

func sampleState() State {
	down := 25.0
	return State{
		Properties: []domain.Property{
			{
				ID:           "p1",
				Address:      "123 Main St, Austin, TX",
				Price:        decimal.NewFromInt(300000),
				RentEstimate: decimal.NewFromInt(2000),
				Bedrooms:     3,
				Bathrooms:    2,
				RentSource:   domain.RentSourceProvider,
			},
		},
		Overrides: map[string]domain.SettingsOverride{
			"p1": {DownPaymentPercent: &down},
		},
		Selected:     []string{"p1"},
		Settings:     domain.DefaultSettings(),
		Rates:        domain.GrowthRates{RentPercent: 3, ValuePercent: 4},
		HorizonYears: 30,
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	code, err := Encode(sampleState())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := Decode(code)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if got.Version != stateVersion {
		t.Errorf("version = %d, want %d", got.Version, stateVersion)
	}
	if len(got.Properties) != 1 || got.Properties[0].ID != "p1" {
		t.Fatalf("properties = %+v", got.Properties)
	}
	if !got.Properties[0].Price.Equal(decimal.NewFromInt(300000)) {
		t.Errorf("price = %s", got.Properties[0].Price)
	}
	ov, ok := got.Overrides["p1"]
	if !ok || ov.DownPaymentPercent == nil || *ov.DownPaymentPercent != 25 {
		t.Errorf("override not preserved: %+v", got.Overrides)
	}
	if got.HorizonYears != 30 || got.Rates.ValuePercent != 4 {
		t.Errorf("projection inputs not preserved: %+v", got)
	}
}

func TestCodeIsURLSafe(t *testing.T) {
	code, err := Encode(sampleState())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if strings.ContainsAny(code, "+/=") {
		t.Errorf("code contains non URL-safe characters: %s", code)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	for _, code := range []string{"", "not base64 ???", "AAAA", "aGVsbG8"} {
		if _, err := Decode(code); !errors.Is(err, ErrInvalidCode) {
			t.Errorf("Decode(%q) error = %v, want ErrInvalidCode", code, err)
		}
	}
}

func TestDecodeRejectsWrongVersion(t *testing.T) {
	code, err := Encode(sampleState())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	s, err := Decode(code)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	s.Version = stateVersion + 1

	// Re-encode behaves like Encode and stamps the supported version, so
	// build the hostile payload by hand through the same pipeline.
	hostile, err := encodeRaw(s)
	if err != nil {
		t.Fatalf("encode raw: %v", err)
	}
	if _, err := Decode(hostile); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("expected ErrInvalidCode for version mismatch, got %v", err)
	}
}
