package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNormalizeHelpers(t *testing.T) {
	if got := NormalizeTechnology("  React "); got != "React" {
		t.Fatalf("NormalizeTechnology: expected React, got %s", got)
	}

	if got := NormalizeDifficulty("  Beginner "); got != "beginner" {
		t.Fatalf("NormalizeDifficulty: expected beginner, got %s", got)
	}
}

func TestStripFences(t *testing.T) {
	input := "```json\n{\"score\": 7}\n```\n"
	want := `{"score": 7}`

	if got := StripFences(input); got != want {
		t.Fatalf("StripFences: expected %q, got %q", want, got)
	}

	raw := `  {"score": 7}  `
	if got := StripFences(raw); got != want {
		t.Fatalf("StripFences (no fences): expected trimmed string, got %q", got)
	}

	if got := StripFences("```"); got != "" {
		t.Fatalf("StripFences (bare fence): expected empty string, got %q", got)
	}
}

func TestRoundingHelpers(t *testing.T) {
	cases := map[float64]float64{
		7.5:    7.5,
		7.25:   7.3,
		6.6666: 6.7,
		0:      0,
	}
	for in, want := range cases {
		if got := RoundOneDecimal(in); got != want {
			t.Fatalf("RoundOneDecimal(%v) = %v, expected %v", in, got, want)
		}
	}

	if got := Percentage(7.5); got != 75 {
		t.Fatalf("Percentage(7.5) = %d, expected 75", got)
	}
	if got := Percentage(6.66); got != 67 {
		t.Fatalf("Percentage(6.66) = %d, expected 67", got)
	}
	if got := Percentage(10); got != 100 {
		t.Fatalf("Percentage(10) = %d, expected 100", got)
	}
}

func TestJSONHelpers(t *testing.T) {
	rec := httptest.NewRecorder()
	payload := map[string]string{"hello": "world"}

	JSON(rec, http.StatusCreated, payload)

	if rec.Code != http.StatusCreated {
		t.Fatalf("JSON: expected status %d, got %d", http.StatusCreated, rec.Code)
	}
	if contentType := rec.Header().Get("Content-Type"); contentType != "application/json" {
		t.Fatalf("JSON: expected content-type application/json, got %s", contentType)
	}

	var got map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("JSON decode failed: %v", err)
	}
	if got["hello"] != "world" {
		t.Fatalf("JSON body mismatch: %+v", got)
	}

	rec2 := httptest.NewRecorder()
	WriteJSON(rec2, http.StatusAccepted, payload)

	if rec2.Code != http.StatusAccepted {
		t.Fatalf("WriteJSON: expected status %d, got %d", http.StatusAccepted, rec2.Code)
	}

	if !strings.Contains(rec2.Body.String(), `"hello":"world"`) {
		t.Fatalf("WriteJSON: expected body to contain payload, got %s", rec2.Body.String())
	}
}

func TestNewLogger(t *testing.T) {
	prod, err := NewLogger("", "")
	if err != nil {
		t.Fatalf("NewLogger returned error: %v", err)
	}
	if prod.Core().Enabled(zapcore.DebugLevel) || !prod.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("expected production logger at info level")
	}

	dev, err := NewLogger("Development", "")
	if err != nil {
		t.Fatalf("NewLogger returned error: %v", err)
	}
	if !dev.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("expected development logger to enable debug")
	}

	quiet, err := NewLogger("production", "warn")
	if err != nil {
		t.Fatalf("NewLogger returned error: %v", err)
	}
	if quiet.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("expected level override to disable info")
	}

	if _, err := NewLogger("", "loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
