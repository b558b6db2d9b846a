package keys

import "testing"

func TestResolveCaseInsensitive(t *testing.T) {
	upper, ok := Resolve("F5")
	if !ok {
		t.Fatal("Expected F5 to resolve")
	}
	lower, ok := Resolve("f5")
	if !ok {
		t.Fatal("Expected f5 to resolve")
	}
	if upper != lower || upper != F5 {
		t.Errorf("Expected F5 and f5 to resolve to %v, got %v and %v", F5, upper, lower)
	}
}

func TestResolveAliases(t *testing.T) {
	tests := []struct {
		name string
		want KeyID
	}{
		{"ctrl", Control},
		{"Control", Control},
		{"win", Meta},
		{"SUPER", Meta},
		{"return", Return},
		{"esc", Escape},
		{"back", Backspace},
		{"del", Delete},
		{"page_up", PageUp},
		{"PageDown", PageDown},
		{"uparrow", UpArrow},
		{"left", LeftArrow},
		{"home", Home},
		{"end", End},
		{"0", Digit0},
		{"9", Digit9},
		{"a", LetterA},
		{"Z", LetterZ},
		{"f12", F12},
	}

	for _, tt := range tests {
		got, ok := Resolve(tt.name)
		if !ok {
			t.Errorf("Resolve(%q): expected a match", tt.name)
			continue
		}
		if got != tt.want {
			t.Errorf("Resolve(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestResolveAbsent(t *testing.T) {
	for _, name := range []string{"", "hello", "f13", "ctr", " ctrl", "ctrl+c", "volumeup"} {
		if id, ok := Resolve(name); ok {
			t.Errorf("Resolve(%q): expected no match, got %v", name, id)
		}
	}
}

func TestKeyClassification(t *testing.T) {
	if !Shift.IsModifier() || Return.IsModifier() {
		t.Error("IsModifier misclassified Shift or Return")
	}
	if !Digit5.IsDigit() || LetterA.IsDigit() {
		t.Error("IsDigit misclassified Digit5 or LetterA")
	}
	if !LetterQ.IsLetter() || F1.IsLetter() {
		t.Error("IsLetter misclassified LetterQ or F1")
	}
	if LetterQ.String() != "q" || Digit7.String() != "7" || PageUp.String() != "pageup" {
		t.Errorf("Unexpected canonical names: %s %s %s", LetterQ, Digit7, PageUp)
	}
}

func TestNamesSorted(t *testing.T) {
	all := Names()
	if len(all) == 0 {
		t.Fatal("Expected a non-empty name list")
	}
	for i := 1; i < len(all); i++ {
		if all[i-1] > all[i] {
			t.Fatalf("Names not sorted at %d: %q > %q", i, all[i-1], all[i])
		}
	}
}
