package ws28xx

import (
	"testing"
)

func TestOffsetsAreBijections(t *testing.T) {
	for s, o := range StringOrders {
		offs := o.Offsets()
		var seen [3]bool
		for _, v := range offs {
			if v < 0 || v > 2 {
				t.Errorf("%s: offset out of range, got: %d, want: 0..2", s, v)
				continue
			}
			if seen[v] {
				t.Errorf("%s: offset %d appears twice in %v", s, v, offs)
			}
			seen[v] = true
		}
	}
}

func TestOffsetsMatchNames(t *testing.T) {
	// The order's name reads off the wire layout: for GRB, green is byte
	// 0, red byte 1, blue byte 2, so the (r,g,b) offsets are (1,0,2).
	tests := []struct {
		order ColorOrder
		want  [3]int
	}{
		{RGB, [3]int{0, 1, 2}},
		{RBG, [3]int{0, 2, 1}},
		{GRB, [3]int{1, 0, 2}},
		{GBR, [3]int{2, 0, 1}},
		{BRG, [3]int{1, 2, 0}},
		{BGR, [3]int{2, 1, 0}},
	}
	for _, test := range tests {
		if got := test.order.Offsets(); got != test.want {
			t.Errorf("%v: got: %v, want: %v", test.order, got, test.want)
		}
	}
}

func TestParseOrderRoundTrip(t *testing.T) {
	for s, want := range StringOrders {
		got, err := ParseOrder(s)
		if err != nil {
			t.Errorf("ParseOrder(%q) failed: %v", s, err)
			continue
		}
		if got != want {
			t.Errorf("ParseOrder(%q) got: %v, want: %v", s, got, want)
		}
		if got.String() != s {
			t.Errorf("String() got: %q, want: %q", got.String(), s)
		}
	}
}

func TestParseOrderUnknown(t *testing.T) {
	if _, err := ParseOrder("RGBW"); err == nil {
		t.Errorf("ParseOrder(\"RGBW\") want error, got nil")
	}
}
