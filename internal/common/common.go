// Package common holds helpers shared by the CLI actions.
package common

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/dtnitsch/review-sentiment/models"
	"github.com/dtnitsch/review-sentiment/pkg/db"
	"github.com/urfave/cli/v2"
)

// GlobalFlags are accepted before any command.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "YAML config file",
			Value: models.DefaultConfigPath,
		},
		&cli.StringFlag{
			Name:  "db",
			Usage: "history database path (default: next to the binary)",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "only log errors",
		},
	}
}

// NewLogger returns the JSON stderr logger used by every action.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	w := c.App.ErrWriter
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

// LoadConfig reads --config. A missing default config file is not an
// error; a missing file named explicitly is.
func LoadConfig(c *cli.Context) (*models.Config, error) {
	path := c.String("config")
	if path == "" {
		return models.DefaultConfig(), nil
	}

	cfg, err := models.LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) && !c.IsSet("config") {
		return models.DefaultConfig(), nil
	}
	if err != nil {
		if errors.Is(err, models.ErrConfigInvalid) {
			return nil, err
		}
		return nil, models.NewAnalysisError(models.KindConfigInvalid, "failed to load config", err)
	}

	if c.IsSet("db") {
		cfg.History.Path = c.String("db")
	}
	return cfg, nil
}

// OpenHistory opens the run history database from config and --db.
func OpenHistory(c *cli.Context, cfg *models.Config) (*db.DB, error) {
	path := cfg.History.Path
	if c.IsSet("db") {
		path = c.String("db")
	}
	database, err := db.Open(path)
	if err != nil {
		return nil, models.NewAnalysisError(models.KindHistoryFailure, "failed to open history database", err)
	}
	return database, nil
}

// ExitCode maps an error to the process exit code: 2 for setup problems
// (config, history), 1 for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, models.ErrConfigInvalid), errors.Is(err, models.ErrHistoryFailure):
		return 2
	}
	return 1
}

// Fail wraps err as a cli exit error with a readable message.
func Fail(err error) error {
	if err == nil {
		return nil
	}
	return cli.Exit("Error: "+err.Error(), ExitCode(err))
}
