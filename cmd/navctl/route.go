package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"campusnav/config"
	"campusnav/internal/domain/entity"
	domainerrors "campusnav/internal/domain/errors"
	"campusnav/internal/domain/repository"
	"campusnav/internal/errors"
	"campusnav/internal/infra/gazetteer"
	logs "campusnav/internal/infra/log"
	"campusnav/internal/infra/routing"

	"github.com/paulmach/orb/geojson"
)

func runRoute(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("route", flag.ExitOnError)
	from := cmd.String("from", "", "Start position as lat,lng")
	to := cmd.String("to", "", "Destination key")
	source := cmd.String("source", "builtin", "Gazetteer source (builtin or a .yaml/.csv path)")
	pf := registerProviderFlags(cmd)
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse route flags")
	}

	start, destination, _, err := parseEndpoints(*from, *to, *source)
	if err != nil {
		return err
	}

	cfg, logger, err := pf.build(os.Stderr)
	if err != nil {
		return err
	}
	provider, err := routing.NewGeometryProvider(routing.ProviderParams{Config: cfg, Logger: logger})
	if err != nil {
		return err
	}

	requestCtx, cancel := context.WithTimeout(ctx, cfg.Routing.RequestTimeout)
	defer cancel()

	coords, err := provider.Route(requestCtx, start, destination.Coordinate)
	if err != nil {
		return errors.Wrapf(err, "%s route", provider.Name())
	}

	geometry := entity.NewRouteGeometry(coords)
	feature := geojson.NewFeature(geometry.LineString())
	feature.Properties["provider"] = provider.Name()
	feature.Properties["destination"] = destination.Key
	feature.Properties["length_m"] = geometry.Length

	return writeJSON(os.Stdout, feature)
}

func writeJSON(w io.Writer, feature *geojson.Feature) error {
	data, err := feature.MarshalJSON()
	if err != nil {
		return errors.WithStack(err)
	}
	_, err = fmt.Fprintln(w, string(data))

	return errors.WithStack(err)
}

// build assembles the configuration subset the routing providers read.
func (pf providerFlags) build(logOutput io.Writer) (*config.Config, *slog.Logger, error) {
	timeout, err := time.ParseDuration(*pf.timeout)
	if err != nil {
		return nil, nil, errors.Wrap(err, "invalid -timeout")
	}

	cfg := &config.Config{
		Routing: &config.RoutingConfig{
			Provider:       *pf.provider,
			RequestTimeout: timeout,
			OSRM: config.OSRMConfig{
				BaseURL: *pf.osrmURL,
				Profile: *pf.profile,
			},
		},
	}
	if *pf.pmtiles != "" {
		cfg.PMTiles = &config.PMTilesConfig{Enabled: true, Source: *pf.pmtiles}
	}
	cfg.Env.Log.Level = *pf.logLevel
	cfg.Env.Log.Pretty = true
	cfg.ApplyDefaults()

	logger, err := logs.NewWithWriter(cfg, logOutput)
	if err != nil {
		return nil, nil, err
	}

	return cfg, logger, nil
}

func parseEndpoints(from, to, source string) (entity.Coordinate, entity.PointOfInterest, repository.GazetteerRepository, error) {
	start, err := parseCoordinate(from)
	if err != nil {
		return entity.Coordinate{}, entity.PointOfInterest{}, nil, err
	}
	if to == "" {
		return entity.Coordinate{}, entity.PointOfInterest{}, nil, errors.New("-to is required")
	}

	points, err := gazetteer.Load(source)
	if err != nil {
		return entity.Coordinate{}, entity.PointOfInterest{}, nil, err
	}
	repo, err := gazetteer.NewRepository(points)
	if err != nil {
		return entity.Coordinate{}, entity.PointOfInterest{}, nil, err
	}

	destination, err := repo.FindByKey(to)
	if err != nil {
		return entity.Coordinate{}, entity.PointOfInterest{}, nil, err
	}

	return start, destination, repo, nil
}

func parseCoordinate(value string) (entity.Coordinate, error) {
	latText, lngText, ok := strings.Cut(value, ",")
	if !ok {
		return entity.Coordinate{}, domainerrors.ErrInvalidCoordinate.WithDetails(fmt.Sprintf("expected lat,lng, got %q", value))
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latText), 64)
	if err != nil {
		return entity.Coordinate{}, errors.Wrap(err, "invalid latitude")
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngText), 64)
	if err != nil {
		return entity.Coordinate{}, errors.Wrap(err, "invalid longitude")
	}

	coordinate := entity.Coordinate{Lat: lat, Lng: lng}
	if !coordinate.IsValid() {
		return entity.Coordinate{}, domainerrors.ErrInvalidCoordinate.WithDetails(value)
	}

	return coordinate, nil
}
