package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/jonboulle/clockwork"
	"github.com/urfave/cli/v2"

	"github.com/DeafMist/disaster-radar/internal/elasticsearch"
	"github.com/DeafMist/disaster-radar/internal/extract"
	"github.com/DeafMist/disaster-radar/internal/logger"
	"github.com/DeafMist/disaster-radar/internal/matcher"
	"github.com/DeafMist/disaster-radar/internal/nlp"
	"github.com/DeafMist/disaster-radar/internal/query"
	"github.com/DeafMist/disaster-radar/internal/search"
	"github.com/DeafMist/disaster-radar/internal/taxonomy"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "inspect",
		Usage:     "Show how a disaster search query is interpreted",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "extract",
				Usage:     "Print the entities extracted from a query",
				ArgsUsage: "<query>",
				Flags:     queryFlags(),
				Action: func(c *cli.Context) error {
					x, err := newExtractor(c)
					if err != nil {
						return err
					}
					return writeJSON(c.App.Writer, interpret(c, x).Parameters())
				},
			},
			{
				Name:      "compile",
				Usage:     "Print the Elasticsearch request body built for a query",
				ArgsUsage: "<query>",
				Flags:     queryFlags(),
				Action: func(c *cli.Context) error {
					x, err := newExtractor(c)
					if err != nil {
						return err
					}
					return writeJSON(c.App.Writer, query.Compile(interpret(c, x)))
				},
			},
			{
				Name:   "taxonomy",
				Usage:  "List disaster categories and the keywords the matcher assigns to each",
				Action: taxonomyCommand,
			},
			{
				Name:      "search",
				Usage:     "Run a query against Elasticsearch and print the response",
				ArgsUsage: "<query>",
				Flags: append(queryFlags(),
					&cli.StringFlag{
						Name:    "es-addr",
						Usage:   "Elasticsearch address; empty runs without a store",
						EnvVars: []string{"ELASTICSEARCH_ADDR"},
					},
					&cli.StringFlag{
						Name:    "index",
						Usage:   "Index holding the posts",
						Value:   "unverified_posts",
						EnvVars: []string{"ELASTICSEARCH_INDEX"},
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Search timeout",
						Value: 10 * time.Second,
					},
				),
				Action: searchCommand,
			},
		},
	}
}

func queryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "now",
			Usage: "Anchor time for relative dates, e.g. 2026-10-15 (default: current time)",
		},
		&cli.BoolFlag{
			Name:  "manual",
			Usage: "Skip NLP and use the explicit field flags",
		},
		&cli.StringFlag{Name: "disaster-type", Usage: "Manual disaster type"},
		&cli.StringFlag{Name: "location", Usage: "Manual location"},
		&cli.StringFlag{Name: "date", Usage: "Manual start date"},
		&cli.StringFlag{Name: "source", Usage: "Manual source"},
		&cli.StringFlag{Name: "priority", Usage: "Manual priority"},
	}
}

func newLogger(c *cli.Context) *slog.Logger {
	return logger.NewWriter(c.App.ErrWriter, c.String("log-level"), "text").With("service", "inspect")
}

func newExtractor(c *cli.Context) (*extract.Extractor, error) {
	clock := clockwork.NewRealClock()
	if raw := c.String("now"); raw != "" {
		now, err := dateparse.ParseIn(raw, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parse --now: %w", err)
		}
		clock = clockwork.NewFakeClockAt(now)
	}
	return extract.New(nlp.NewPipeline(nil), matcher.New(taxonomy.Default().Keywords()), clock), nil
}

func request(c *cli.Context) search.Request {
	q := strings.Join(c.Args().Slice(), " ")
	if !c.Bool("manual") {
		return search.Request{NLP: true, Query: q}
	}
	return search.Request{
		Query: q,
		Manual: extract.ManualFields{
			Query:        q,
			DisasterType: c.String("disaster-type"),
			Location:     c.String("location"),
			Date:         c.String("date"),
			Source:       c.String("source"),
			Priority:     c.String("priority"),
		},
	}
}

func interpret(c *cli.Context, x *extract.Extractor) extract.Entities {
	return search.NewService(x, search.NewExecutor(nil, 0, nil, nil), newLogger(c), nil).Interpret(request(c))
}

func searchCommand(c *cli.Context) error {
	x, err := newExtractor(c)
	if err != nil {
		return err
	}
	log := newLogger(c)

	var store search.Store
	if addr := c.String("es-addr"); addr != "" {
		client, err := elasticsearch.New(addr, c.String("index"), "", log)
		if err != nil {
			return err
		}
		store = client
	}

	svc := search.NewService(x, search.NewExecutor(store, c.Duration("timeout"), log, nil), log, nil)
	return writeJSON(c.App.Writer, svc.Search(c.Context, request(c)))
}

type categoryKeywords struct {
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
}

func taxonomyCommand(c *cli.Context) error {
	tax := taxonomy.Default()
	byCategory := make(map[string][]string)
	for _, kw := range tax.Keywords() {
		if name, ok := tax.CategoryOf(kw); ok {
			byCategory[name] = append(byCategory[name], kw)
		}
	}

	out := make([]categoryKeywords, 0, len(byCategory))
	for _, name := range tax.Categories() {
		out = append(out, categoryKeywords{Category: name, Keywords: byCategory[name]})
	}
	return writeJSON(c.App.Writer, out)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
