package output

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/mj1618/screenpilot/internal/model"
)

func sampleResult() AnalyzeResult {
	return AnalyzeResult{
		TS:          1707500000,
		Description: "A login form",
		Elements: []model.Element{
			{Label: "Sign in", X: 640, Y: 480, Type: "button"},
		},
		Recommended: &model.Recommendation{
			Label:  "Sign in",
			X:      640,
			Y:      480,
			Action: model.ActionClick,
			Reason: "primary action on screen",
		},
	}
}

func capture(t *testing.T, fn func() error) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	fnErr := fn()
	w.Close()
	os.Stdout = old

	if fnErr != nil {
		t.Fatal(fnErr)
	}
	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestPrintJSON_Compact(t *testing.T) {
	out := capture(t, func() error { return PrintJSON(sampleResult()) })

	if bytes.Count([]byte(out), []byte("\n")) > 1 {
		t.Errorf("compact output should be single line, got:\n%s", out)
	}
	var decoded AnalyzeResult
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Description != "A login form" {
		t.Errorf("description: got %q", decoded.Description)
	}
	if len(decoded.Elements) != 1 {
		t.Errorf("elements: got %d, want 1", len(decoded.Elements))
	}
}

func TestPrintPrettyJSON(t *testing.T) {
	out := capture(t, func() error { return PrintPrettyJSON(sampleResult()) })

	if bytes.Count([]byte(out), []byte("\n")) <= 1 {
		t.Errorf("pretty output should be multi-line, got:\n%s", out)
	}
	var decoded AnalyzeResult
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
}

func TestPrintYAML(t *testing.T) {
	out := capture(t, func() error { return PrintYAML(sampleResult()) })

	var decoded AnalyzeResult
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded.Recommended == nil || decoded.Recommended.Label != "Sign in" {
		t.Errorf("recommended not round-tripped: %+v", decoded.Recommended)
	}
}

func TestAnalyzeResult_OmitEmpty(t *testing.T) {
	result := AnalyzeResult{TS: 123, Elements: []model.Element{}}
	data, err := json.Marshal(result)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if _, ok := m["recommended"]; ok {
		t.Error("nil recommended should be omitted")
	}
	if _, ok := m["dispatched"]; ok {
		t.Error("false dispatched should be omitted")
	}
	if _, ok := m["ts"]; !ok {
		t.Error("ts should always be present")
	}
}

func TestPrint_Format(t *testing.T) {
	defer func() { OutputFormat = FormatYAML; PrettyOutput = false }()

	OutputFormat = FormatJSON
	out := capture(t, func() error { return Print(sampleResult()) })
	if !json.Valid([]byte(out)) {
		t.Errorf("json format produced invalid JSON:\n%s", out)
	}

	OutputFormat = Format("toml")
	if err := Print(sampleResult()); err == nil {
		t.Error("unsupported format should error")
	}
}
