package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/pixeldrift/internal/config"
)

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  pixeldrift config validate [--path PATH]")
	fmt.Fprintln(w, "  pixeldrift config print [--path PATH] [--defaults]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'pixeldrift config <command> --help' for command-specific options.")
}

func runConfig(args []string) int {
	if len(args) == 0 {
		printConfigUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printConfigUsage(os.Stdout)
		return 0
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: pixeldrift config validate [--path PATH]")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Load the config file and report whether it is usable.")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Flags:")
			fs.PrintDefaults()
		}
		path := fs.String("path", "", "Config file path (default: ~/.config/pixeldrift/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 0 {
			fmt.Fprintln(os.Stderr, "config validate takes no arguments")
			fs.Usage()
			return 2
		}

		var err error
		if *path != "" {
			_, err = config.LoadFromPath(*path)
		} else {
			_, err = config.Load()
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: pixeldrift config print [--path PATH] [--defaults]")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Print the effective configuration as YAML.")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Flags:")
			fs.PrintDefaults()
		}
		path := fs.String("path", "", "Config file path (default: ~/.config/pixeldrift/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 0 {
			fmt.Fprintln(os.Stderr, "config print takes no arguments")
			fs.Usage()
			return 2
		}

		var (
			cfg *config.Config
			err error
		)
		switch {
		case *printDefaults:
			cfg = config.DefaultConfig()
		case *path != "":
			cfg, err = config.LoadFromPath(*path)
		default:
			cfg, err = config.Load()
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n\n", args[0])
		printConfigUsage(os.Stderr)
		return 2
	}
}
