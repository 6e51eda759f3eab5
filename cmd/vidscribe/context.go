package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"vidscribe/internal/config"
	"vidscribe/internal/services"
)

// runtimeFactory builds the pipeline collaborators for a loaded config.
type runtimeFactory func(ctx context.Context, cfg *config.Config, logger *slog.Logger, progress io.Writer) (*runtime, error)

type commandContext struct {
	flags      *rootFlags
	newRuntime runtimeFactory
	lookupEnv  config.LookupFunc

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(flags *rootFlags) *commandContext {
	return &commandContext{
		flags:      flags,
		newRuntime: newGoogleRuntime,
	}
}

// loadEnv merges the dotenv file into the process environment. A missing
// default file is ignored; a missing explicit file is an error.
func (c *commandContext) loadEnv() error {
	path := strings.TrimSpace(c.flags.envFile)
	explicit := path != ""
	if !explicit {
		path = config.DefaultDotenvPath()
	}
	found, err := config.LoadDotenv(path)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "config", "load env file", "", err)
	}
	if explicit && !found {
		return services.Wrap(services.ErrConfiguration, "config", "load env file", fmt.Sprintf("%s does not exist", path), nil)
	}
	return nil
}

// readConfig loads the environment and configuration without validating it.
func (c *commandContext) readConfig() (*config.Config, string, bool, error) {
	if err := c.loadEnv(); err != nil {
		return nil, "", false, err
	}
	cfg, path, exists, err := config.Read(strings.TrimSpace(c.flags.configPath), c.lookupEnv)
	if err != nil {
		return nil, "", false, asConfigError(err)
	}
	if err := c.applyOverrides(cfg); err != nil {
		return nil, "", false, err
	}
	return cfg, path, exists, nil
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := c.readConfig()
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = asConfigError(err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) applyOverrides(cfg *config.Config) error {
	if dir := strings.TrimSpace(c.flags.outputDir); dir != "" {
		expanded, err := config.ExpandPath(dir)
		if err != nil {
			return services.Wrap(services.ErrConfiguration, "config", "resolve output dir", "", err)
		}
		cfg.Paths.OutputDir = expanded
	}
	if c.flags.keepAudio {
		cfg.Pipeline.KeepAudio = true
	}
	if level := strings.TrimSpace(c.flags.logLevel); level != "" {
		cfg.Logging.Level = strings.ToLower(level)
	}
	return nil
}

func asConfigError(err error) error {
	if errors.Is(err, services.ErrConfiguration) {
		return err
	}
	return services.Wrap(services.ErrConfiguration, "config", "load", "", err)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
