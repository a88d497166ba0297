package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

const (
	ModeBooking = "booking-service"
	ModeTrip    = "trip-service"
	ModeGrocery = "grocery-service"
)

// isKnownMode checks if the provided mode name is known.
func isKnownMode(s string) (string, bool) {
	switch s {
	case ModeBooking, "booking", "b":
		return ModeBooking, true
	case ModeTrip, "trip", "trips", "t":
		return ModeTrip, true
	case ModeGrocery, "grocery", "g":
		return ModeGrocery, true
	default:
		return "", false
	}
}

// ParseMode supports:
//
//	--mode=<value>
//	<value> (subcommand shorthand), e.g., `booking-service --max-concurrent=150`
func ParseMode(args []string) (string, []string, error) {
	var mode string
	var out []string

	for i := range args {
		arg := args[i]
		if after, ok := strings.CutPrefix(arg, "--mode="); ok {
			mode = after
			continue
		}

		if mode == "" {
			if m, ok := isKnownMode(arg); ok {
				mode = m
				continue
			}
		}
		out = append(out, arg)
	}

	if mode == "" {
		return "", out, errors.New("no mode specified: use --mode=<service>")
	}

	if m, ok := isKnownMode(mode); ok {
		mode = m
	}

	return mode, out, nil
}

// PrintUsage prints the usage information with examples.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, "\033[36m") // cyan

	fmt.Fprintln(w, `Usage:
  ./zorp --mode=<service> [flags]

Services (modes):
  booking-service      Auth, map data, booking sessions, and checkout stream
  trip-service         Ongoing trips, payment release, and driver chat
  grocery-service      Grocery catalog and carts

Examples:
  ./zorp --mode=booking-service --max-concurrent=150
  ./zorp --mode=trip-service --prefetch=8 --max-concurrent=100
  ./zorp --mode=grocery-service --max-concurrent=50`)

	fmt.Fprint(w, "\033[0m") // reset
}

// AttachUsage wires a concise per-mode usage to a FlagSet.
func AttachUsage(fs *flag.FlagSet, mode string) {
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: ./zorp --mode=%s [flags]\n", mode)
		fs.PrintDefaults()
	}
}
