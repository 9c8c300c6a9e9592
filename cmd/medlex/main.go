// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/medlex"
	"github.com/poiesic/medlex/ai"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "medlex",
		Usage: "Medical term resolution against a concept vocabulary",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:     "db",
				Aliases:  []string{"d"},
				Usage:    "Path to BadgerDB database directory",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "ai-host",
				Usage: "Inference service host URL",
				Value: "http://localhost:11434/v1",
			},
			&cli.StringFlag{
				Name:  "ai-model",
				Usage: "Inference model name",
				Value: "qwen2.5:3b",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Disambiguate a medical term into candidate senses",
				ArgsUsage: "<term>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "language",
						Usage: "2-letter language code of the term",
						Value: "en",
					},
				},
			},
			{
				Name:      "expand",
				Usage:     "Generate synonyms for a term",
				ArgsUsage: "<term>",
				Action:    expandCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "language",
						Usage: "2-letter language code of the term",
						Value: "en",
					},
					&cli.StringFlag{
						Name:  "context",
						Usage: "Context sentence describing the intended sense",
					},
				},
			},
			{
				Name:      "lookup",
				Usage:     "Resolve text against the concept vocabulary",
				ArgsUsage: "<text>",
				Action:    lookupCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "language",
						Usage: "2-letter language code of the text",
						Value: "en",
					},
				},
			},
			{
				Name:  "languages",
				Usage: "Manage the language registry",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List registered languages",
						Action: languagesListCommand,
					},
					{
						Name:      "add",
						Usage:     "Register a language by name",
						ArgsUsage: "<name>",
						Action:    languagesAddCommand,
					},
					{
						Name:      "relabel",
						Usage:     "Change a language's display label",
						ArgsUsage: "<code> <label>",
						Action:    languagesRelabelCommand,
					},
					{
						Name:   "seed",
						Usage:  "Register the initial language set",
						Action: languagesSeedCommand,
					},
				},
			},
			{
				Name:   "metrics",
				Usage:  "Print search analytics",
				Action: metricsCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openDatabase(c *cli.Context) (*medlex.Database, error) {
	config := ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithModel(c.String("ai-model")),
	)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return medlex.NewDatabase(c.String("db"), medlex.WithAIConfig(config))
}

func searchCommand(c *cli.Context) error {
	term := strings.Join(c.Args().Slice(), " ")
	if term == "" {
		return fmt.Errorf("a term is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	p, err := db.NewPipeline()
	if err != nil {
		return err
	}

	_, candidates, err := p.Search(context.Background(), term, c.String("language"))
	if err != nil {
		return err
	}

	fmt.Printf("Found %d senses for %q\n", len(candidates), term)
	for i, candidate := range candidates {
		fmt.Printf("%d: %s (%s)[%d]\n   %s\n", i+1, candidate.Term, candidate.Category, candidate.Relevance, candidate.Definition)
	}
	return nil
}

func expandCommand(c *cli.Context) error {
	term := strings.Join(c.Args().Slice(), " ")
	if term == "" {
		return fmt.Errorf("a term is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	p, err := db.NewPipeline()
	if err != nil {
		return err
	}

	candidates, err := p.ExpandSynonyms(context.Background(), term, c.String("context"), c.String("language"))
	if err != nil {
		return err
	}

	fmt.Printf("Found %d synonyms for %q\n", len(candidates), term)
	for i, candidate := range candidates {
		fmt.Printf("%d: %s [%0.2f]\n", i+1, candidate.Text, candidate.Relevance)
	}
	return nil
}

func lookupCommand(c *cli.Context) error {
	text := strings.Join(c.Args().Slice(), " ")
	if text == "" {
		return fmt.Errorf("text is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	matches, err := db.LookupConcepts(context.Background(), text, c.String("language"))
	if err != nil {
		return err
	}

	fmt.Printf("Found %d concepts for %q\n", len(matches), text)
	for i, match := range matches {
		marker := ""
		if match.ExactMatch {
			marker = " exact"
		}
		if match.MappedFrom != nil {
			marker += fmt.Sprintf(" via %q", match.MappedFrom.Name)
		}
		fmt.Printf("%d: %s (%d) %s/%s %s [%0.3f]%s\n",
			i+1, match.Record.Name, match.Record.Id, match.Record.Vocabulary,
			match.Record.Domain, match.Record.Standard, match.Score, marker)
	}
	return nil
}

func languagesListCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	reg, err := db.NewRegistry()
	if err != nil {
		return err
	}

	languages, err := reg.List(context.Background())
	if err != nil {
		return err
	}
	for _, lang := range languages {
		fmt.Printf("%s  %s (%s)\n", lang.Code, lang.Label, lang.NativeName)
	}
	return nil
}

func languagesAddCommand(c *cli.Context) error {
	name := strings.Join(c.Args().Slice(), " ")
	if name == "" {
		return fmt.Errorf("a language name is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	reg, err := db.NewRegistry()
	if err != nil {
		return err
	}

	lang, err := reg.ResolveOrCreate(context.Background(), name)
	if err != nil {
		return err
	}
	fmt.Printf("%s  %s (%s)\n", lang.Code, lang.Label, lang.NativeName)
	return nil
}

func languagesRelabelCommand(c *cli.Context) error {
	if c.Args().Len() < 2 {
		return fmt.Errorf("a code and a label are required")
	}
	code := c.Args().Get(0)
	label := strings.Join(c.Args().Slice()[1:], " ")

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	reg, err := db.NewRegistry()
	if err != nil {
		return err
	}

	lang, err := reg.Relabel(context.Background(), code, label)
	if err != nil {
		return err
	}
	fmt.Printf("%s  %s (%s)\n", lang.Code, lang.Label, lang.NativeName)
	return nil
}

func languagesSeedCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	reg, err := db.NewRegistry()
	if err != nil {
		return err
	}

	if err := reg.Seed(context.Background()); err != nil {
		return err
	}
	return languagesListCommand(c)
}

func metricsCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	aggregator, err := db.NewAggregator()
	if err != nil {
		return err
	}

	snapshot, err := aggregator.ComputeMetrics(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Total searches: %d\n", snapshot.TotalSearches)
	fmt.Printf("Concept lookup rate: %0.1f%%\n", snapshot.ConceptLookupPercentage)

	fmt.Println("Languages:")
	for code, count := range snapshot.LanguageDistribution {
		fmt.Printf("  %s: %d\n", code, count)
	}
	fmt.Println("Common terms:")
	for term, count := range snapshot.CommonSearchTerms {
		fmt.Printf("  %s: %d\n", term, count)
	}
	fmt.Println("Most viewed concepts:")
	for name, count := range snapshot.MostViewedConcepts {
		fmt.Printf("  %s: %d\n", name, count)
	}
	fmt.Println("Most selected synonyms:")
	for synonym, count := range snapshot.MostSelectedSynonyms {
		fmt.Printf("  %s: %d\n", synonym, count)
	}
	fmt.Println("Trend:")
	for _, point := range snapshot.SearchTrend {
		fmt.Printf("  %s: %d\n", point.Day, point.Count)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
