// Package flags defines the CLI flags for the allure-bootstrap binary.
package flags

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/andreivcodes/allure-go/writer"
)

const EnvVarPrefix = "ALLURE"

func prefixEnvVar(name string) []string {
	return []string{fmt.Sprintf("%s_%s", EnvVarPrefix, name)}
}

var (
	ResultsDir = &cli.StringFlag{
		Name:    "results-dir",
		Value:   writer.DefaultResultsDir,
		EnvVars: prefixEnvVar("RESULTS_DIR"),
		Usage:   "Directory the results layout is written into",
	}
	Clean = &cli.BoolFlag{
		Name:    "clean",
		Value:   false,
		EnvVars: prefixEnvVar("CLEAN_RESULTS"),
		Usage:   "Remove and recreate the results directory before writing",
	}
	EnvironmentFile = &cli.StringFlag{
		Name:    "environment",
		Value:   "",
		EnvVars: prefixEnvVar("ENVIRONMENT_FILE"),
		Usage:   "YAML file of key/value pairs written to environment.properties",
	}
	CategoriesFile = &cli.StringFlag{
		Name:    "categories",
		Value:   "",
		EnvVars: prefixEnvVar("CATEGORIES_FILE"),
		Usage:   "YAML file of defect categories written to categories.json",
	}
)

var requiredFlags = []cli.Flag{}

var optionalFlags = []cli.Flag{
	ResultsDir,
	Clean,
	EnvironmentFile,
	CategoriesFile,
}

var Flags []cli.Flag

func init() {
	Flags = append(requiredFlags, optionalFlags...)
}

// CheckRequired returns an error if any required flag is unset.
func CheckRequired(ctx *cli.Context) error {
	for _, f := range requiredFlags {
		if !ctx.IsSet(f.Names()[0]) {
			return fmt.Errorf("flag %s is required", f.Names()[0])
		}
	}
	return nil
}
