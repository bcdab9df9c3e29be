package pointer

import (
	"github.com/kbaines/pounce/internal/perr"
)

// Action names the gesture performed when a hint or grid cell is selected.
// The zero behavior, ActionLeftClick, is what an unconfigured selection
// does.
type Action string

const (
	ActionLeftClick   Action = "left_click"
	ActionRightClick  Action = "right_click"
	ActionMiddleClick Action = "middle_click"
	ActionDoubleClick Action = "double_click"
	ActionMoveOnly    Action = "move"
)

// ParseAction validates a configured action name.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionLeftClick, ActionRightClick, ActionMiddleClick, ActionDoubleClick, ActionMoveOnly:
		return Action(s), nil
	case "":
		return ActionLeftClick, nil
	default:
		return "", perr.Newf(perr.CodeParse, "unknown pointer action %q", s)
	}
}

// Button returns the button an action presses and whether it presses one.
func (a Action) Button() (Button, bool) {
	switch a {
	case ActionLeftClick, ActionDoubleClick:
		return ButtonLeft, true
	case ActionRightClick:
		return ButtonRight, true
	case ActionMiddleClick:
		return ButtonMiddle, true
	default:
		return 0, false
	}
}
