// Package extract recovers a structured analysis from the free-text reply of
// a vision model. Models wrap their JSON inconsistently: sometimes the reply
// is a clean document, sometimes it sits inside a markdown fence, sometimes
// it is buried in prose. Extract tries each shape in order of likelihood.
package extract

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/mj1618/screenpilot/internal/model"
)

// ErrNoJSON is returned when no strategy yields a parseable JSON object.
var ErrNoJSON = errors.New("no JSON object found in response")

var fenceRE = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// Extract parses the raw model reply into an Analysis. Strategies, in order:
//
//  1. The whole string is a JSON document.
//  2. A fenced code block (```json or bare ```) contains the document.
//  3. The span from the first '{' to the last '}' is the document.
//
// Each strategy's parse failure is swallowed and the next attempted; only
// exhaustion of all three returns ErrNoJSON.
func Extract(raw string) (*model.Analysis, error) {
	if a, err := decode(raw); err == nil {
		return a, nil
	}

	if m := fenceRE.FindStringSubmatch(raw); m != nil {
		if a, err := decode(m[1]); err == nil {
			return a, nil
		}
	}

	if start := strings.Index(raw, "{"); start != -1 {
		if end := strings.LastIndex(raw, "}"); end > start {
			if a, err := decode(raw[start : end+1]); err == nil {
				return a, nil
			}
		}
	}

	return nil, ErrNoJSON
}

// wireRecommendation uses pointer coordinates so a recommendation that is
// present but missing x or y can be told apart from one at (0,0). Coordinates
// decode as floats because models routinely emit "x": 500.0; they truncate
// to pixels on conversion.
type wireRecommendation struct {
	Label  string   `json:"label"`
	X      *float64 `json:"x"`
	Y      *float64 `json:"y"`
	Action string   `json:"action"`
	Reason string   `json:"reason"`
}

type wireElement struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Type  string  `json:"type"`
}

type wireAnalysis struct {
	Description string              `json:"screen_description"`
	Elements    []wireElement       `json:"elements"`
	Recommended *wireRecommendation `json:"recommended"`
}

func decode(s string) (*model.Analysis, error) {
	var w wireAnalysis
	if err := json.Unmarshal([]byte(s), &w); err != nil {
		return nil, err
	}

	a := &model.Analysis{
		Description: w.Description,
		Elements:    make([]model.Element, 0, len(w.Elements)),
	}
	for _, e := range w.Elements {
		a.Elements = append(a.Elements, model.Element{
			Label: e.Label,
			X:     int(e.X),
			Y:     int(e.Y),
			Type:  e.Type,
		})
	}

	// A recommendation without both coordinates is not actionable; treat it
	// as absent rather than failing the cycle.
	if r := w.Recommended; r != nil && r.X != nil && r.Y != nil {
		a.Recommended = &model.Recommendation{
			Label:  r.Label,
			X:      int(*r.X),
			Y:      int(*r.Y),
			Action: model.ParseAction(r.Action),
			Reason: r.Reason,
		}
	}
	return a, nil
}
