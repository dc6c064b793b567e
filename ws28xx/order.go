package ws28xx

import (
	"fmt"
)

// ColorOrder says where each of the red, green and blue bytes lands within
// an LED's three wire bytes. WS2812-family chips usually want GRB; older
// WS2811 drivers are commonly RGB or BRG.
type ColorOrder int

const (
	GRB ColorOrder = iota
	BRG
	BGR
	GBR
	RGB
	RBG
)

// StringOrders maps config-file spellings to orders.
var StringOrders = map[string]ColorOrder{
	"GRB": GRB,
	"BRG": BRG,
	"BGR": BGR,
	"GBR": GBR,
	"RGB": RGB,
	"RBG": RBG,
}

// offsets[o] is the wire byte position of the red, green and blue channels
// respectively. Each entry is a permutation of {0,1,2}.
var offsets = map[ColorOrder][3]int{
	GRB: {1, 0, 2},
	BRG: {1, 2, 0},
	BGR: {2, 1, 0},
	GBR: {2, 0, 1},
	RGB: {0, 1, 2},
	RBG: {0, 2, 1},
}

// Offsets returns the (red, green, blue) byte offsets for this order.
func (o ColorOrder) Offsets() [3]int {
	return offsets[o]
}

func (o ColorOrder) String() string {
	for s, v := range StringOrders {
		if v == o {
			return s
		}
	}
	return fmt.Sprintf("ColorOrder(%d)", int(o))
}

// ParseOrder converts a config-file spelling like "GRB" to a ColorOrder.
func ParseOrder(s string) (ColorOrder, error) {
	o, ok := StringOrders[s]
	if !ok {
		return 0, fmt.Errorf("unknown color order %q", s)
	}
	return o, nil
}
