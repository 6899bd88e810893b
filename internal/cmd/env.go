package cmd

import (
	"github.com/Iron-Ham/fruitfilter/internal/config"
	"github.com/Iron-Ham/fruitfilter/internal/errors"
	"github.com/Iron-Ham/fruitfilter/internal/fruit"
	"github.com/Iron-Ham/fruitfilter/internal/logging"
	"github.com/Iron-Ham/fruitfilter/internal/view"
)

// environment is what every data command starts from: the validated
// config, the base table and the configured views.
type environment struct {
	cfg    *config.Config
	base   *fruit.Table
	views  []view.View
	logger *logging.Logger
}

// loadEnvironment loads the config and the dataset it selects and activates
// the configured theme. The logger is tagged with the command name; Close
// releases it.
func loadEnvironment(command string) (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "loading config")
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		// Logging is best effort; the command still runs without it
		logger = logging.NopLogger()
	}
	logger = logger.WithCommand(command)

	env := &environment{cfg: cfg, logger: logger}

	provider, err := cfg.NewProvider()
	if err != nil {
		env.Close()
		return nil, err
	}
	env.base, err = provider.Load()
	if err != nil {
		logger.Error("dataset failed to load", "source", provider.Name(), "error", err)
		env.Close()
		return nil, err
	}

	env.views, err = cfg.BuildViews()
	if err != nil {
		env.Close()
		return nil, errors.Wrap(err, "building views")
	}

	applyTheme(env)
	logger.Info("dataset loaded", "source", provider.Name(), "rows", env.base.Len(), "views", len(env.views))
	return env, nil
}

// Close flushes and closes the logger.
func (e *environment) Close() {
	_ = e.logger.Close()
}
