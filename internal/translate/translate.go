// Package translate turns structured request payloads into canonical actions.
package translate

import (
	"math"

	"astra/internal/action"
	"astra/internal/keys"
)

// ScrollMultiplier scales request scroll units into wheel units.
const ScrollMultiplier = 10

// MaxScrollAmount bounds the magnitude of a scroll request, in request units.
const MaxScrollAmount = 100

// Mouse truncates the deltas toward zero and saturates them to the int32
// range. It never fails.
func Mouse(dx, dy float64) action.MouseMove {
	return action.MouseMove{DX: truncate(dx), DY: truncate(dy)}
}

func truncate(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	}
	return int(v)
}

// Click validates the click type. Matching is case-sensitive.
func Click(kind string) (action.Click, error) {
	switch kind {
	case "left", "left_click":
		return action.Click{Kind: action.ClickLeft}, nil
	case "right", "right_click":
		return action.Click{Kind: action.ClickRight}, nil
	case "double", "double_click":
		return action.Click{Kind: action.ClickDouble}, nil
	}
	return action.Click{}, action.Invalid("Unknown click type: %s", kind)
}

// Scroll validates the direction and scales amount (default 1) by ScrollMultiplier.
// Down and left are negative. Amounts beyond MaxScrollAmount in either
// direction are rejected.
func Scroll(direction string, amount *int) (action.Scroll, error) {
	n := 1
	if amount != nil {
		n = *amount
	}
	if n > MaxScrollAmount || n < -MaxScrollAmount {
		return action.Scroll{}, action.Invalid("Scroll amount out of range: %d (limit %d)", n, MaxScrollAmount)
	}
	n *= ScrollMultiplier

	switch direction {
	case "up":
		return action.Scroll{Axis: action.Vertical, Amount: n}, nil
	case "down":
		return action.Scroll{Axis: action.Vertical, Amount: -n}, nil
	case "right":
		return action.Scroll{Axis: action.Horizontal, Amount: n}, nil
	case "left":
		return action.Scroll{Axis: action.Horizontal, Amount: -n}, nil
	}
	return action.Scroll{}, action.Invalid("Unknown scroll direction: %s", direction)
}

// Key resolves the main key and its modifiers. An unresolved main key becomes
// a literal to be typed as-is; unresolved modifiers are dropped.
func Key(name string, modifiers []string) action.KeyPress {
	kp := action.KeyPress{}
	if id, ok := keys.Resolve(name); ok {
		kp.Key = id
	} else {
		kp.Literal, kp.Unresolved = name, true
	}

	for _, m := range modifiers {
		if id, ok := keys.Resolve(m); ok {
			kp.Modifiers = append(kp.Modifiers, id)
		}
	}
	return kp
}
