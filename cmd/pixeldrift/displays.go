package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/pixeldrift/internal/ipc"
)

func printDisplaysUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  pixeldrift displays list [--json]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'pixeldrift displays <command> --help' for command-specific options.")
}

func runDisplays(args []string) int {
	if len(args) == 0 {
		printDisplaysUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printDisplaysUsage(os.Stdout)
		return 0
	}

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: pixeldrift displays list [--json]")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "List connected outputs as seen by the daemon.")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Flags:")
			fs.PrintDefaults()
		}
		jsonOut := fs.Bool("json", false, "Output display details as JSON")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 0 {
			fmt.Fprintln(os.Stderr, "displays list takes no arguments")
			fs.Usage()
			return 2
		}

		client := ipc.NewClient()
		data, err := client.ListDisplays()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		if *jsonOut {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(data.Displays); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			return 0
		}

		if len(data.Displays) == 0 {
			fmt.Println("No connected displays found.")
			return 0
		}
		for _, d := range data.Displays {
			line := fmt.Sprintf("%s %dx%d @ %.1fHz", d.Name, d.Width, d.Height, d.RefreshHz)
			if d.Primary {
				line += " (primary)"
			}
			fmt.Println(line)
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown displays command: %s\n\n", args[0])
		printDisplaysUsage(os.Stderr)
		return 2
	}
}
