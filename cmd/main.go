package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	allure "github.com/andreivcodes/allure-go"
	"github.com/andreivcodes/allure-go/flags"
	"github.com/andreivcodes/allure-go/types"
	"github.com/andreivcodes/allure-go/writer"
)

var (
	Version   = "v0.1.0"
	GitCommit = ""
)

func main() {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s", Version, GitCommit)
	app.Name = "allure-bootstrap"
	app.Usage = "Prepare an Allure results directory"
	app.Description = "allure-bootstrap initializes a results directory and writes the run-level environment.properties and categories.json artifacts"
	app.Flags = flags.Flags
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if allure.IsConfigError(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	if err := flags.CheckRequired(ctx); err != nil {
		return allure.NewConfigError(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return allure.NewConfigError(err)
	}
	defer func() { _ = logger.Sync() }()

	resultsDir := ctx.String(flags.ResultsDir.Name)
	w := writer.New(resultsDir)
	if err := w.Init(ctx.Bool(flags.Clean.Name)); err != nil {
		return allure.NewConfigError(err)
	}
	logger.Info("results directory ready",
		zap.String("dir", w.ResultsDir()),
		zap.Bool("clean", ctx.Bool(flags.Clean.Name)))

	if path := ctx.String(flags.EnvironmentFile.Name); path != "" {
		properties, err := loadEnvironment(path)
		if err != nil {
			return allure.NewConfigError(err)
		}
		if _, err := w.WriteEnvironment(properties); err != nil {
			return allure.NewWriteError("environment.properties", err)
		}
		logger.Info("wrote environment.properties", zap.Int("entries", len(properties)))
	}

	if path := ctx.String(flags.CategoriesFile.Name); path != "" {
		categories, err := loadCategories(path)
		if err != nil {
			return allure.NewConfigError(err)
		}
		if _, err := w.WriteCategories(categories); err != nil {
			return allure.NewWriteError("categories.json", err)
		}
		logger.Info("wrote categories.json", zap.Int("categories", len(categories)))
	}

	return nil
}

// loadEnvironment reads a YAML map and returns its entries sorted by key,
// so repeated runs produce identical files.
func loadEnvironment(path string) ([]writer.Property, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment file %q: %w", path, err)
	}
	values := make(map[string]string)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse environment file %q: %w", path, err)
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	properties := make([]writer.Property, 0, len(keys))
	for _, k := range keys {
		properties = append(properties, writer.Property{Key: k, Value: values[k]})
	}
	return properties, nil
}

func loadCategories(path string) ([]types.Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read categories file %q: %w", path, err)
	}
	var categories []types.Category
	if err := yaml.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("failed to parse categories file %q: %w", path, err)
	}
	for _, c := range categories {
		for _, s := range c.MatchedStatuses {
			if !s.Valid() {
				return nil, fmt.Errorf("category %q has invalid status %q", c.Name, s)
			}
		}
	}
	return categories, nil
}
