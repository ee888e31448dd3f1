package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/pixeldrift/internal/ipc"
)

func printShiftUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  pixeldrift shift once [--display NAME] [--amount N] [--strategy NAME]")
	fmt.Fprintln(w, "  pixeldrift shift start [--display NAME] [--amount N] [--interval N] [--strategy NAME] [--pattern]")
	fmt.Fprintln(w, "  pixeldrift shift stop")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'pixeldrift shift <command> --help' for command-specific options.")
}

func runShift(args []string) int {
	if len(args) == 0 {
		printShiftUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printShiftUsage(os.Stdout)
		return 0
	}

	client := ipc.NewClient()

	switch args[0] {
	case "once":
		fs := flag.NewFlagSet("once", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: pixeldrift shift once [--display NAME] [--amount N] [--strategy NAME]")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Apply a single shift; the display reverts to base a moment later.")
			fmt.Fprintln(os.Stderr, "Omitted flags fall back to the daemon's configured defaults.")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Flags:")
			fs.PrintDefaults()
		}
		display := fs.String("display", "", "Output to shift (default: configured display, else primary)")
		amount := fs.Int("amount", 0, "Shift distance in pixels, 1-20")
		strategy := fs.String("strategy", "", "Shift strategy: transform, pan, pan-basic or position")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 0 {
			fmt.Fprintln(os.Stderr, "shift once takes no arguments")
			fs.Usage()
			return 2
		}

		msg, err := client.ShiftOnce(*display, *amount, *strategy)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println(msg)
		return 0

	case "start":
		fs := flag.NewFlagSet("start", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: pixeldrift shift start [--display NAME] [--amount N] [--interval N] [--strategy NAME] [--pattern]")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Start the periodic shift schedule on a display.")
			fmt.Fprintln(os.Stderr, "Omitted flags fall back to the daemon's configured defaults.")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Flags:")
			fs.PrintDefaults()
		}
		display := fs.String("display", "", "Output to drive (default: configured display, else primary)")
		amount := fs.Int("amount", 0, "Shift distance in pixels, 1-20")
		interval := fs.Int("interval", 0, "Seconds between shifts, 1-86400")
		strategy := fs.String("strategy", "", "Shift strategy: transform, pan, pan-basic or position")
		patternFlag := fs.Bool("pattern", false, "Walk the nine-position ring instead of toggling base/shifted")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 0 {
			fmt.Fprintln(os.Stderr, "shift start takes no arguments")
			fs.Usage()
			return 2
		}

		// Only an explicit --pattern/--pattern=false overrides the
		// configured value.
		var pattern *bool
		fs.Visit(func(f *flag.Flag) {
			if f.Name == "pattern" {
				pattern = patternFlag
			}
		})

		msg, err := client.StartShift(ipc.StartShiftPayload{
			Display:         *display,
			Amount:          *amount,
			IntervalSeconds: *interval,
			Strategy:        *strategy,
			Pattern:         pattern,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println(msg)
		return 0

	case "stop":
		fs := flag.NewFlagSet("stop", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: pixeldrift shift stop")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Stop the schedule and reset the display to its base position.")
		}
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 0 {
			fmt.Fprintln(os.Stderr, "shift stop takes no arguments")
			fs.Usage()
			return 2
		}

		msg, err := client.StopShift()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println(msg)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown shift command: %s\n\n", args[0])
		printShiftUsage(os.Stderr)
		return 2
	}
}
