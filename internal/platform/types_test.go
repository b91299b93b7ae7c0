package platform

import "testing"

func TestParseMouseButton_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  MouseButton
	}{
		{"", MouseLeft},
		{"left", MouseLeft},
		{"Left", MouseLeft},
		{"LEFT", MouseLeft},
		{"right", MouseRight},
		{"Right", MouseRight},
		{"middle", MouseMiddle},
		{"Middle", MouseMiddle},
	}
	for _, tt := range tests {
		got, err := ParseMouseButton(tt.input)
		if err != nil {
			t.Errorf("ParseMouseButton(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseMouseButton(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestParseMouseButton_Invalid(t *testing.T) {
	_, err := ParseMouseButton("invalid")
	if err == nil {
		t.Error("ParseMouseButton(\"invalid\") should fail")
	}
}

func TestBounds_CenterAndEmpty(t *testing.T) {
	b := Bounds{X: 10, Y: 20, Width: 100, Height: 40}
	x, y := b.Center()
	if x != 60 || y != 40 {
		t.Errorf("Center() = (%d,%d), want (60,40)", x, y)
	}
	if b.Empty() {
		t.Error("non-zero bounds reported empty")
	}
	if !(Bounds{X: 5, Y: 5}).Empty() {
		t.Error("zero-size bounds should be empty")
	}
}
