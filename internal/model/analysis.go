package model

import "strings"

// Action is a pointer action the inference service can recommend.
type Action string

const (
	ActionClick       Action = "click"
	ActionDoubleClick Action = "double_click"
	ActionRightClick  Action = "right_click"
)

// ParseAction normalizes an action string from a model response.
// Unknown or empty values fall back to a single left click.
func ParseAction(s string) Action {
	switch Action(strings.ToLower(strings.TrimSpace(s))) {
	case ActionDoubleClick:
		return ActionDoubleClick
	case ActionRightClick:
		return ActionRightClick
	default:
		return ActionClick
	}
}

// Element is one interactive UI element the model reported on screen.
// Elements are descriptive only; actions are driven by Recommendation.
type Element struct {
	Label string `json:"label"          yaml:"label"`
	X     int    `json:"x"              yaml:"x"`
	Y     int    `json:"y"              yaml:"y"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Recommendation is the single action the model proposes for this cycle.
type Recommendation struct {
	Label  string `json:"label"            yaml:"label"`
	X      int    `json:"x"                yaml:"x"`
	Y      int    `json:"y"                yaml:"y"`
	Action Action `json:"action"           yaml:"action"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Analysis is the parsed outcome of one inference call.
// Recommended is nil when the model proposed nothing actionable; callers
// skip dispatch in that case rather than treating it as a failure.
type Analysis struct {
	Description string          `json:"screen_description"    yaml:"description"`
	Elements    []Element       `json:"elements"              yaml:"elements"`
	Recommended *Recommendation `json:"recommended,omitempty" yaml:"recommended,omitempty"`
}
