package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"campusnav/internal/domain/entity"
	"campusnav/internal/errors"
	"campusnav/internal/infra/clock"
	"campusnav/internal/infra/pubsub"
	"campusnav/internal/infra/routing"
	"campusnav/internal/usecase"
	"campusnav/internal/usecase/impl"

	"golang.org/x/sync/errgroup"
)

func runSimulate(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("simulate", flag.ExitOnError)
	from := cmd.String("from", "", "Start position as lat,lng")
	to := cmd.String("to", "", "Destination key")
	source := cmd.String("source", "builtin", "Gazetteer source (builtin or a .yaml/.csv path)")
	interval := cmd.Duration("interval", 200*time.Millisecond, "Delay between position samples")
	steps := cmd.Int("steps", 20, "Number of position samples along the route")
	pf := registerProviderFlags(cmd)
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse simulate flags")
	}
	if *steps < 1 {
		return errors.New("-steps must be positive")
	}

	start, destination, repo, err := parseEndpoints(*from, *to, *source)
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

	navigation := impl.NewNavigationService(cfg, repo, provider, pubsub.NewNoopPublisher(logger), clock.NewScheduler(), logger)
	updates, unsubscribe := navigation.Subscribe()
	defer unsubscribe()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	group, groupCtx := errgroup.WithContext(runCtx)
	group.Go(func() error {
		return navigation.Run(groupCtx)
	})

	routes := make(chan entity.RouteGeometry, 1)
	group.Go(func() error {
		return printProgress(groupCtx, updates, routes, cancel)
	})
	group.Go(func() error {
		var route entity.RouteGeometry
		select {
		case route = <-routes:
		case <-groupCtx.Done():
			return nil
		}

		return walk(groupCtx, navigation, route, destination.Coordinate, *steps, *interval)
	})

	if _, err := navigation.UpdatePosition(groupCtx, entity.PositionSample{Coordinate: start, Timestamp: time.Now()}); err != nil {
		cancel()
		_ = group.Wait()

		return err
	}
	if _, err := navigation.SelectDestination(groupCtx, destination.Key); err != nil {
		cancel()
		_ = group.Wait()

		return err
	}

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return errors.WithStack(ctx.Err())
}

// printProgress prints every state change and hands the first resolved route to the walker.
// It cancels the run once the destination is reached.
func printProgress(ctx context.Context, updates <-chan usecase.NavigationUpdate, routes chan<- entity.RouteGeometry, cancel context.CancelFunc) error {
	sent := false
	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}

			if update.Kind == usecase.UpdateFrame {
				if update.Frame.Locked {
					fmt.Println("route revealed, map locked")
				}

				continue
			}

			session := update.State.Session
			switch session.Status {
			case entity.SessionRequesting:
				if session.AwaitingPosition() {
					fmt.Printf("waiting for a position fix before routing to %s\n", session.DestinationKey)

					continue
				}
				fmt.Printf("requesting route to %s\n", session.DestinationKey)
			case entity.SessionActive:
				if session.Geometry != nil && !sent {
					sent = true
					routes <- *session.Geometry
					fmt.Printf("route ready: %d points, %.0f m, fallback=%t\n",
						len(session.Geometry.Coordinates), session.Geometry.Length, session.Fallback)
				}
				fmt.Printf("progress %5.1f%% (closest point %d)\n", session.ProgressPercent, session.ClosestIndex)
			case entity.SessionArrived:
				fmt.Printf("arrived at %s\n", session.DestinationKey)
				cancel()

				return nil
			case entity.SessionIdle:
			}
		}
	}
}

// walk feeds evenly spaced samples along route, ending on the destination itself.
func walk(ctx context.Context, navigation usecase.NavigationUsecase, route entity.RouteGeometry, destination entity.Coordinate, steps int, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for i := 1; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		position := pointAlong(route, float64(i)/float64(steps))
		if i == steps {
			position = destination
		}

		if _, err := navigation.UpdatePosition(ctx, entity.PositionSample{Coordinate: position, Timestamp: time.Now()}); err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return err
		}
	}

	return nil
}

// pointAlong returns the coordinate at fraction of the route's length.
func pointAlong(route entity.RouteGeometry, fraction float64) entity.Coordinate {
	coords := route.Coordinates
	if len(coords) == 0 {
		return entity.Coordinate{}
	}

	target := route.Length * fraction
	for i := 1; i < len(coords); i++ {
		segment := coords[i-1].DistanceTo(coords[i])
		if segment >= target && segment > 0 {
			return coords[i-1].Interpolate(coords[i], target/segment)
		}
		target -= segment
	}

	return coords[len(coords)-1]
}
