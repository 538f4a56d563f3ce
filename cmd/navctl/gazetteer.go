package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"campusnav/internal/errors"
	"campusnav/internal/infra/gazetteer"
)

func runGazetteer(args []string) error {
	cmd := flag.NewFlagSet("gazetteer", flag.ExitOnError)
	source := cmd.String("source", "builtin", "Gazetteer source (builtin or a .yaml/.csv path)")
	validate := cmd.Bool("validate", false, "Only validate the source and print a summary")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse gazetteer flags")
	}

	points, err := gazetteer.Load(*source)
	if err != nil {
		return err
	}
	repo, err := gazetteer.NewRepository(points)
	if err != nil {
		fmt.Printf("❌ Validation failed: %v\n", err)

		return err
	}

	if *validate {
		fmt.Printf("✅ %s: %d points of interest\n", *source, repo.Len())

		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tLAT\tLNG\tKEYWORDS")
	for _, point := range repo.List() {
		fmt.Fprintf(w, "%s\t%s\t%.6f\t%.6f\t%d\n",
			point.Key, point.Name, point.Coordinate.Lat, point.Coordinate.Lng, len(point.Keywords))
	}

	return errors.WithStack(w.Flush())
}
