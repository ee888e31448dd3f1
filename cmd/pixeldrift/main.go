package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/pixeldrift/internal/ipc"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		if len(os.Args) > 2 && (os.Args[2] == "help" || os.Args[2] == "-h" || os.Args[2] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: pixeldrift daemon")
			os.Exit(0)
		}
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "daemon takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: pixeldrift daemon")
			os.Exit(2)
		}
		os.Exit(runDaemon())
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "displays":
		os.Exit(runDisplays(os.Args[2:]))
	case "shift":
		os.Exit(runShift(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pixeldrift <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the pixeldrift daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon and schedule status")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  displays list       List connected displays")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  shift once          Apply a single shift (reverts after a moment)")
	fmt.Fprintln(w, "  shift start         Start the periodic shift schedule")
	fmt.Fprintln(w, "  shift stop          Stop the schedule and reset the display")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'pixeldrift <command> --help' for command-specific options.")
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: pixeldrift status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon and shift schedule status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("daemon_running:   %v\n", status.DaemonRunning)
	fmt.Printf("auto_shift:       %v\n", status.Running)
	if status.Display != "" {
		fmt.Printf("display:          %s\n", status.Display)
	}
	if status.Running {
		fmt.Printf("strategy:         %s\n", status.Strategy)
		fmt.Printf("shift_amount:     %d\n", status.ShiftAmount)
		fmt.Printf("interval_seconds: %d\n", status.IntervalSeconds)
		fmt.Printf("pattern:          %v\n", status.Pattern)
		fmt.Printf("tick_count:       %d\n", status.TickCount)
	}
	if status.LastStatus != "" {
		fmt.Printf("last_status:      %s\n", status.LastStatus)
	}
	fmt.Printf("uptime_seconds:   %d\n", status.UptimeSeconds)
	return 0
}
