package xrandr

import (
	"strconv"
	"strings"
)

const defaultRefreshHz = 60.0

// ParseDisplays extracts connected display records from an xrandr query
// report. Displays whose geometry cannot be determined from either the
// header line or the active mode line are dropped.
func ParseDisplays(report string) []DisplayInfo {
	lines := strings.Split(report, "\n")

	var displays []DisplayInfo
	for i, line := range lines {
		if !strings.Contains(line, " connected") || strings.Contains(line, "disconnected") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		info := DisplayInfo{Name: fields[0], RefreshHz: defaultRefreshHz}
		for _, f := range fields[1:] {
			if f == "primary" {
				info.Primary = true
				break
			}
		}

		modeLine := activeModeLine(lines[i+1:])

		w, h, ok := headerGeometry(fields)
		if !ok {
			w, h, ok = modeGeometry(modeLine)
		}
		if !ok {
			continue
		}
		info.Width, info.Height = w, h

		if hz, ok := modeRefresh(modeLine); ok {
			info.RefreshHz = hz
		}

		displays = append(displays, info)
	}
	return displays
}

// headerGeometry finds a WxH+X+Y token on the header line, e.g.
// "1920x1080+1920+0". Only the size half is validated; the offsets after
// the first '+' are ignored.
func headerGeometry(fields []string) (int, int, bool) {
	for _, tok := range fields {
		plus := strings.IndexByte(tok, '+')
		if plus <= 0 {
			continue
		}
		if w, h, ok := parseSize(tok[:plus]); ok {
			return w, h, true
		}
	}
	return 0, 0, false
}

// activeModeLine returns the first mode line carrying the active marker
// ('*') in the indented block that follows a display header. The block
// ends at the first line that is not indented.
func activeModeLine(rest []string) string {
	for _, line := range rest {
		if line == "" || (!strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t")) {
			return ""
		}
		if strings.Contains(line, "*") {
			return line
		}
	}
	return ""
}

// modeGeometry parses the resolution from an active mode line such as
// "   1920x1080     60.00*+  59.94". Interlaced modes carry a trailing
// letter ("1920x1080i") which is dropped.
func modeGeometry(line string) (int, int, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, 0, false
	}
	size := fields[0]
	end := 0
	for end < len(size) && (size[end] == 'x' || (size[end] >= '0' && size[end] <= '9')) {
		end++
	}
	return parseSize(size[:end])
}

// modeRefresh pulls the refresh rate out of the token carrying the active
// marker, stripping the '*' and any preferred-mode '+'.
func modeRefresh(line string) (float64, bool) {
	for _, tok := range strings.Fields(line) {
		if !strings.Contains(tok, "*") {
			continue
		}
		hz, err := strconv.ParseFloat(strings.TrimRight(tok, "*+"), 64)
		if err != nil {
			return 0, false
		}
		return hz, true
	}
	return 0, false
}

func parseSize(size string) (int, int, bool) {
	sep := strings.IndexByte(size, 'x')
	if sep <= 0 {
		return 0, 0, false
	}
	w, err := strconv.ParseUint(size[:sep], 10, 32)
	if err != nil {
		return 0, 0, false
	}
	h, err := strconv.ParseUint(size[sep+1:], 10, 32)
	if err != nil {
		return 0, 0, false
	}
	return int(w), int(h), true
}
