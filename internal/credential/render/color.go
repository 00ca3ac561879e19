package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	dErrors "coursecred/pkg/domain-errors"
)

// RGB is a color with channels in [0,1].
type RGB struct {
	R, G, B float64
}

// ParseHexColor accepts 3 or 6 hex digits with an optional leading '#'.
// Short forms expand by doubling each digit, so "123" is "112233".
func ParseHexColor(value string) (RGB, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return RGB{}, dErrors.New(dErrors.CodeConfiguration, fmt.Sprintf("invalid hex color %q", value))
	}

	var channels [3]float64
	for i := range channels {
		n, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return RGB{}, dErrors.New(dErrors.CodeConfiguration, fmt.Sprintf("invalid hex color %q", value))
		}
		channels[i] = float64(n) / 255
	}
	return RGB{R: channels[0], G: channels[1], B: channels[2]}, nil
}

// Bytes returns the color as 0-255 channel values.
func (c RGB) Bytes() (r, g, b int) {
	return toByte(c.R), toByte(c.G), toByte(c.B)
}

func toByte(v float64) int {
	return int(math.Round(v * 255))
}
