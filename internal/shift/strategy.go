// Package shift computes and applies the pixel shifts that spread
// static-content wear across an OLED panel.
package shift

import (
	"fmt"

	"github.com/1broseidon/pixeldrift/internal/xrandr"
)

// Strategy selects the xrandr mechanism used to move the picture.
type Strategy string

const (
	// StrategyTransform shifts via a translation matrix with the
	// framebuffer padded so the edge rows stay visible.
	StrategyTransform Strategy = "transform"
	// StrategyPan pans inside a framebuffer grown by a fixed margin.
	StrategyPan Strategy = "pan"
	// StrategyPanBasic pans without growing the framebuffer.
	StrategyPanBasic Strategy = "pan-basic"
	// StrategyPosition moves the output inside the existing screen space.
	StrategyPosition Strategy = "position"
)

const (
	identityMatrix = "1,0,0,0,1,0,0,0,1"

	// Margins the grown framebuffer leaves around the mode, in pixels.
	fbMargin  = 2
	panMargin = 10
)

// ParseStrategy validates a strategy name from config or the wire.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyTransform, StrategyPan, StrategyPanBasic, StrategyPosition:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown shift strategy %q (want transform, pan, pan-basic or position)", s)
}

// TransformMatrix renders the row-major 3x3 translation matrix that moves
// the picture by (dx, dy) pixels on a display of the given size. Offsets
// are fractions of the display dimensions with six decimal places; the
// zero shift is the exact identity string xrandr resets to.
func TransformMatrix(width, height, dx, dy int) string {
	if dx == 0 && dy == 0 {
		return identityMatrix
	}
	tx := float64(dx) / float64(width)
	ty := float64(dy) / float64(height)
	return fmt.Sprintf("1,0,%.6f,0,1,%.6f,0,0,1", tx, ty)
}

// PositionString renders a --pos argument. xrandr's position parser only
// accepts the '+' separator when y is non-negative; negative coordinates
// carry their own sign.
func PositionString(dx, dy int) string {
	if dy >= 0 {
		return fmt.Sprintf("%d+%d", dx, dy)
	}
	return fmt.Sprintf("%d%d", dx, dy)
}

// PanningString renders a --panning geometry of the given size at (dx, dy).
func PanningString(width, height, dx, dy int) string {
	return fmt.Sprintf("%dx%d+%d+%d", width, height, dx, dy)
}

// Args returns the xrandr arguments that shift the display by (dx, dy)
// using this strategy. Unknown strategies fall back to the transform.
func (s Strategy) Args(d xrandr.DisplayInfo, dx, dy int) []string {
	switch s {
	case StrategyPan:
		return []string{"--output", d.Name, "--panning", PanningString(d.Width+panMargin, d.Height+panMargin, dx, dy)}
	case StrategyPanBasic:
		return []string{"--output", d.Name, "--panning", PanningString(d.Width, d.Height, dx, dy)}
	case StrategyPosition:
		return []string{"--output", d.Name, "--pos", PositionString(dx, dy)}
	default:
		return []string{
			"--output", d.Name,
			"--mode", fmt.Sprintf("%dx%d", d.Width, d.Height),
			"--fb", fmt.Sprintf("%dx%d", d.Width+fbMargin, d.Height+fbMargin),
			"--transform", TransformMatrix(d.Width, d.Height, dx, dy),
		}
	}
}

// actionName names what the strategy just did, for status text.
func (s Strategy) actionName(dx, dy int) string {
	if dx == 0 && dy == 0 {
		return "BASE (Identity)"
	}
	switch s {
	case StrategyPan, StrategyPanBasic:
		return "PANNED"
	case StrategyPosition:
		return "REPOSITIONED"
	default:
		return "TRANSFORMED"
	}
}
