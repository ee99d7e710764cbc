package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"codeberg.org/mutker/hwprint/internal/errors"
	"codeberg.org/mutker/hwprint/internal/logger"
)

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error
}

var commands = []command{
	{"classify", "Fingerprint hook payloads read from a file or stdin", runClassify},
	{"probe", "Fingerprint the local machine", runProbe},
	{"history", "List stored reports", runHistory},
}

func main() {
	logger.Init(logger.InfoLevel, logger.IsService())

	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	name, args := os.Args[1], os.Args[2:]
	if name == "help" || name == "-h" || name == "--help" {
		usage(os.Stdout)
		return
	}

	cmd, ok := lookup(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "hwprint: unknown command %q\n\n", name)
		usage(os.Stderr)
		os.Exit(2)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	if err := cmd.run(ctx, args, os.Stdin, os.Stdout); err != nil {
		var appErr errors.Error
		if errors.As(err, &appErr) {
			logger.ErrorWithCode(appErr).Str("command", name).Msg("Command failed")
		} else {
			logger.Error().Err(err).Str("command", name).Msg("Command failed")
		}
		cancel()
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for command line misuse and 1 for any other failure.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.HasCode(err, errors.ErrUsage):
		return 2
	default:
		return 1
	}
}

func lookup(name string) (command, bool) {
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd, true
		}
	}
	return command{}, false
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: hwprint <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'hwprint <command> --help' for the flags of a command.")
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}
