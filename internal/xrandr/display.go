package xrandr

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// DisplayInfo describes one connected output.
type DisplayInfo struct {
	Name      string
	Width     int
	Height    int
	RefreshHz float64
	Primary   bool
}

// String renders the record the way it is shown to users, e.g.
// "HDMI-1 1920x1080 @ 60.0Hz (primary)".
func (d DisplayInfo) String() string {
	s := fmt.Sprintf("%s %dx%d @ %.1fHz", d.Name, d.Width, d.Height, d.RefreshHz)
	if d.Primary {
		s += " (primary)"
	}
	return s
}

// ListDisplays queries the runner and parses the connected outputs. A
// failed query is logged and yields an empty list.
func ListDisplays(r Runner) []DisplayInfo {
	report, err := r.Query()
	if err != nil {
		log.Warn().Err(err).Msg("display query failed")
		return nil
	}
	return ParseDisplays(report)
}

// ResolveDisplay picks the display to drive. An empty name selects the
// primary output, falling back to the first connected one.
func ResolveDisplay(r Runner, name string) (DisplayInfo, error) {
	displays := ListDisplays(r)
	if len(displays) == 0 {
		return DisplayInfo{}, errors.New("no connected displays detected")
	}
	if name == "" {
		for _, d := range displays {
			if d.Primary {
				return d, nil
			}
		}
		return displays[0], nil
	}
	for _, d := range displays {
		if d.Name == name {
			return d, nil
		}
	}
	return DisplayInfo{}, fmt.Errorf("display %q is not connected", name)
}
