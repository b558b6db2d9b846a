package translate

import (
	"math"
	"reflect"
	"testing"

	"astra/internal/action"
	"astra/internal/keys"
)

func intPtr(v int) *int { return &v }

func TestMouseTruncates(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   action.MouseMove
	}{
		{10.9, -3.7, action.MouseMove{DX: 10, DY: -3}},
		{0, 0, action.MouseMove{}},
		{-0.5, 0.5, action.MouseMove{DX: 0, DY: 0}},
		{math.NaN(), math.Inf(1), action.MouseMove{DX: 0, DY: math.MaxInt32}},
		{1e20, -1e20, action.MouseMove{DX: math.MaxInt32, DY: math.MinInt32}},
		{math.Inf(-1), 2147483647.9, action.MouseMove{DX: math.MinInt32, DY: math.MaxInt32}},
	}

	for _, tt := range tests {
		if got := Mouse(tt.dx, tt.dy); got != tt.want {
			t.Errorf("Mouse(%v, %v) = %v, want %v", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestClickAcceptedKinds(t *testing.T) {
	tests := map[string]action.ClickKind{
		"left":         action.ClickLeft,
		"left_click":   action.ClickLeft,
		"right":        action.ClickRight,
		"right_click":  action.ClickRight,
		"double":       action.ClickDouble,
		"double_click": action.ClickDouble,
	}

	for kind, want := range tests {
		got, err := Click(kind)
		if err != nil {
			t.Errorf("Click(%q): unexpected error %v", kind, err)
			continue
		}
		if got.Kind != want {
			t.Errorf("Click(%q) = %v, want %v", kind, got.Kind, want)
		}
	}
}

func TestClickRejectsOthers(t *testing.T) {
	for _, kind := range []string{"triple", "Left", "LEFT", "", "middle", " left"} {
		_, err := Click(kind)
		if err == nil {
			t.Errorf("Click(%q): expected error", kind)
			continue
		}
		if action.KindOf(err) != action.InvalidRequest {
			t.Errorf("Click(%q): expected InvalidRequest, got %v", kind, action.KindOf(err))
		}
	}

	_, err := Click("triple")
	if err.Error() != "Unknown click type: triple" {
		t.Errorf("Unexpected message: %q", err.Error())
	}
}

func TestScrollScalingAndSign(t *testing.T) {
	tests := []struct {
		direction string
		amount    *int
		want      action.Scroll
	}{
		{"up", intPtr(3), action.Scroll{Axis: action.Vertical, Amount: 30}},
		{"down", intPtr(3), action.Scroll{Axis: action.Vertical, Amount: -30}},
		{"right", intPtr(2), action.Scroll{Axis: action.Horizontal, Amount: 20}},
		{"left", intPtr(2), action.Scroll{Axis: action.Horizontal, Amount: -20}},
		{"up", nil, action.Scroll{Axis: action.Vertical, Amount: 10}},
		{"left", nil, action.Scroll{Axis: action.Horizontal, Amount: -10}},
		{"down", intPtr(-1), action.Scroll{Axis: action.Vertical, Amount: 10}},
		{"up", intPtr(0), action.Scroll{Axis: action.Vertical, Amount: 0}},
	}

	for _, tt := range tests {
		got, err := Scroll(tt.direction, tt.amount)
		if err != nil {
			t.Errorf("Scroll(%q): unexpected error %v", tt.direction, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Scroll(%q, %v) = %v, want %v", tt.direction, tt.amount, got, tt.want)
		}
	}
}

func TestScrollAmountBounds(t *testing.T) {
	for _, amount := range []int{MaxScrollAmount + 1, -MaxScrollAmount - 1, math.MaxInt/10 + 1, math.MinInt} {
		got, err := Scroll("up", intPtr(amount))
		if err == nil {
			t.Errorf("Scroll(up, %d) = %v, expected error", amount, got)
			continue
		}
		if action.KindOf(err) != action.InvalidRequest {
			t.Errorf("Scroll(up, %d): expected InvalidRequest, got %v", amount, action.KindOf(err))
		}
	}

	got, err := Scroll("up", intPtr(MaxScrollAmount))
	if err != nil || got.Amount != MaxScrollAmount*ScrollMultiplier {
		t.Errorf("Scroll(up, max) = %v, %v", got, err)
	}
	got, err = Scroll("left", intPtr(-MaxScrollAmount))
	if err != nil || got.Amount != MaxScrollAmount*ScrollMultiplier {
		t.Errorf("Scroll(left, -max) = %v, %v", got, err)
	}
}

func TestScrollUnknownDirection(t *testing.T) {
	_, err := Scroll("sideways", nil)
	if err == nil {
		t.Fatal("Expected error for unknown direction")
	}
	if action.KindOf(err) != action.InvalidRequest {
		t.Errorf("Expected InvalidRequest, got %v", action.KindOf(err))
	}
	if err.Error() != "Unknown scroll direction: sideways" {
		t.Errorf("Unexpected message: %q", err.Error())
	}
}

func TestKeyResolvedWithModifiers(t *testing.T) {
	got := Key("C", []string{"ctrl", "bogus", "Shift"})
	want := action.KeyPress{
		Key:       keys.LetterC,
		Modifiers: []keys.KeyID{keys.Control, keys.Shift},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Key() = %#v, want %#v", got, want)
	}
}

func TestKeyEmptyNameIsEmptyLiteral(t *testing.T) {
	got := Key("", []string{"ctrl"})
	if !got.Unresolved || got.Literal != "" || got.Key != keys.Unknown {
		t.Errorf("Expected empty literal, got %#v", got)
	}
	if len(got.Modifiers) != 1 || got.Modifiers[0] != keys.Control {
		t.Errorf("Expected ctrl modifier kept, got %v", got.Modifiers)
	}
}

func TestKeyLiteralFallback(t *testing.T) {
	got := Key("Hello World", nil)
	if !got.Unresolved || got.Literal != "Hello World" {
		t.Errorf("Expected literal to round-trip unchanged, got %#v", got)
	}
	if len(got.Modifiers) != 0 {
		t.Errorf("Expected no modifiers, got %v", got.Modifiers)
	}
}
