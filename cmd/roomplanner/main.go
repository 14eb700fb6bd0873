package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"room-planner/internal/config"
	"room-planner/internal/export"
	"room-planner/internal/geometry"
	"room-planner/internal/house"
	"room-planner/internal/logging"
	"room-planner/internal/planner"
	"room-planner/internal/server"
)

func main() {
	app := &cli.App{
		Name:  "roomplanner",
		Usage: "plan collision-free, room-segmented paths through a house",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file"},
			&cli.StringFlag{Name: "house", Required: true, Usage: "house GeoJSON file"},
			&cli.StringFlag{Name: "log-level", Usage: "override log.level"},
		},
		Commands: []*cli.Command{
			{
				Name:  "plan",
				Usage: "plan a single path and print it as JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "start", Required: true, Usage: "start position as X,Y"},
					&cli.StringFlag{Name: "goal", Required: true, Usage: "goal position as X,Y"},
					&cli.Float64Flag{Name: "step-size", Usage: "override planner.step_size"},
					&cli.IntFlag{Name: "max-iter", Usage: "override planner.max_iter"},
					&cli.Int64Flag{Name: "seed", Usage: "override planner.seed"},
					&cli.StringFlag{Name: "out", Usage: "write the plan as GeoJSON to this file"},
					&cli.BoolFlag{Name: "tree", Usage: "include the search tree in the GeoJSON output"},
				},
				Action: planAction,
			},
			{
				Name:  "serve",
				Usage: "serve planning requests over HTTP",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "override server.addr"},
				},
				Action: serveAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config, logger and house shared by every command
func setup(c *cli.Context) (config.Config, *zap.Logger, *planner.Planner, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return cfg, nil, nil, err
		}
		cfg = loaded
	}
	if level := c.String("log-level"); level != "" {
		cfg.Log.Level = level
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return cfg, nil, nil, err
	}

	h, err := house.LoadFile(c.String("house"))
	if err != nil {
		return cfg, nil, nil, err
	}
	logger.Info("house loaded",
		zap.Int("walls", len(h.Walls)),
		zap.Int("doors", h.Doors()),
		zap.Int("furniture", len(h.Furniture)),
		zap.Int("rooms", len(h.Rooms)),
	)

	p := planner.New(h, planner.WithDefaults(cfg.Planner), planner.WithLogger(logger))
	return cfg, logger, p, nil
}

func planAction(c *cli.Context) error {
	_, logger, p, err := setup(c)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	start, err := parsePoint(c.String("start"))
	if err != nil {
		return errors.Wrap(err, "invalid --start")
	}
	goal, err := parsePoint(c.String("goal"))
	if err != nil {
		return errors.Wrap(err, "invalid --goal")
	}

	plan, err := p.Plan(planner.Request{
		Start:    start,
		Goal:     goal,
		StepSize: c.Float64("step-size"),
		MaxIter:  c.Int("max-iter"),
		Seed:     c.Int64("seed"),
	})
	if err != nil {
		return err
	}
	logger.Info("path found",
		zap.Int("waypoints", len(plan.Path)),
		zap.Int("routes", len(plan.Routes)),
		zap.Float64("cost", plan.Cost),
		zap.Duration("elapsed", plan.Elapsed),
	)

	if out := c.String("out"); out != "" {
		if err := export.WriteFile(plan, c.Bool("tree"), out); err != nil {
			return err
		}
		logger.Info("plan saved", zap.String("file", out))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}

func serveAction(c *cli.Context) error {
	cfg, logger, p, err := setup(c)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	addr := cfg.Server.Addr
	if override := c.String("addr"); override != "" {
		addr = override
	}

	logger.Info("room planner listening",
		zap.String("addr", addr),
		zap.Strings("endpoints", []string{"POST /route", "GET /health"}),
	)
	return http.ListenAndServe(addr, server.New(p, logger.Named("http")))
}

// parsePoint reads "X,Y"
func parsePoint(s string) (geometry.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geometry.Point{}, errors.Errorf("expected X,Y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geometry.Point{}, errors.Wrapf(err, "bad x in %q", s)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geometry.Point{}, errors.Wrapf(err, "bad y in %q", s)
	}
	return geometry.Point{x, y}, nil
}
