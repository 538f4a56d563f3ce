package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"campusnav/internal/errors"
)

// Supported subcommands:
// - match:     Resolve a transcript against the gazetteer
// - gazetteer: List or validate a point-of-interest source
// - route:     Fetch route geometry from a provider as GeoJSON
// - simulate:  Walk a route through the navigation loop and print progress

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runSubcommand(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runSubcommand(ctx context.Context, name string, args []string) error {
	switch name {
	case "match":
		return runMatch(args)
	case "gazetteer":
		return runGazetteer(args)
	case "route":
		return runRoute(ctx, args)
	case "simulate":
		return runSimulate(ctx, args)
	case "help", "-h", "--help":
		printUsage()

		return nil
	default:
		printUsage()

		return errors.Errorf("unknown subcommand %q", name)
	}
}

// providerFlags are shared by route and simulate
type providerFlags struct {
	provider *string
	osrmURL  *string
	profile  *string
	pmtiles  *string
	timeout  *string
	logLevel *string
}

func registerProviderFlags(cmd *flag.FlagSet) providerFlags {
	return providerFlags{
		provider: cmd.String("provider", "straight", "Geometry provider (osrm, pmtiles, straight)"),
		osrmURL:  cmd.String("osrm-url", "https://router.project-osrm.org", "OSRM base URL"),
		profile:  cmd.String("profile", "foot", "OSRM profile"),
		pmtiles:  cmd.String("pmtiles", "", "PMTiles archive path or URL (pmtiles provider)"),
		timeout:  cmd.String("timeout", "5s", "Geometry request timeout"),
		logLevel: cmd.String("log-level", "warn", "Log level written to stderr"),
	}
}

func printUsage() {
	fmt.Println("Usage: navctl <command> [options]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  match       Resolve a transcript to a destination")
	fmt.Println("  gazetteer   List or validate a gazetteer source")
	fmt.Println("  route       Print route geometry between a position and a destination")
	fmt.Println("  simulate    Walk to a destination and print navigation progress")
	fmt.Println("")
	fmt.Println("Use 'navctl <command> -h' for more information about a command.")
}
