package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"campusnav/internal/domain/matcher"
	"campusnav/internal/errors"
	"campusnav/internal/infra/gazetteer"
)

func runMatch(args []string) error {
	cmd := flag.NewFlagSet("match", flag.ExitOnError)
	text := cmd.String("text", "", "Transcript to resolve, e.g. \"Navigate to CSE Block\"")
	source := cmd.String("source", "builtin", "Gazetteer source (builtin or a .yaml/.csv path)")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse match flags")
	}
	if *text == "" {
		return errors.New("-text is required for match command")
	}

	points, err := gazetteer.Load(*source)
	if err != nil {
		return err
	}
	repo, err := gazetteer.NewRepository(points)
	if err != nil {
		return err
	}

	resolution := matcher.New(repo.List()).Resolve(*text)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(resolution); err != nil {
		return errors.WithStack(err)
	}

	if resolution.Result != nil {
		fmt.Fprintf(os.Stderr, "%s: %s (%.2f)\n", resolution.Outcome, resolution.Result.Point.Name, resolution.Result.Confidence)
	} else {
		fmt.Fprintf(os.Stderr, "%s\n", resolution.Outcome)
	}

	return nil
}
