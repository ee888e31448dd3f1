package shift

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/1broseidon/pixeldrift/internal/xrandr"
)

// ErrResetExhausted is returned when every directive in the reset chain
// was rejected by xrandr.
var ErrResetExhausted = errors.New("all reset attempts failed")

// resetAttempts lists the reset directives in fallback order: identity
// transform first, then panning and position clears, finally a full
// --auto reconfigure.
func resetAttempts(name string) [][]string {
	return [][]string{
		{"--output", name, "--transform", identityMatrix},
		{"--output", name, "--panning", "0x0"},
		{"--output", name, "--pos", "0x0"},
		{"--output", name, "--auto"},
	}
}

// ResetDisplay walks the reset chain until xrandr accepts a directive,
// returning the flag that worked. When every attempt fails it returns
// ErrResetExhausted wrapping the last stderr text.
func ResetDisplay(r xrandr.Runner, name string) (string, error) {
	var lastErr string
	for _, args := range resetAttempts(name) {
		log.Debug().Str("display", name).Strs("args", args).Msg("reset attempt")
		res := r.Execute(args...)
		if res.ExitSuccess {
			return args[2], nil
		}
		lastErr = res.Stderr
	}
	if lastErr != "" {
		return "", fmt.Errorf("%w: %s", ErrResetExhausted, lastErr)
	}
	return "", ErrResetExhausted
}
