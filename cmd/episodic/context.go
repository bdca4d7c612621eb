package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"episodic/internal/cache"
	"episodic/internal/catalog"
	"episodic/internal/config"
	"episodic/internal/datastore"
	"episodic/internal/domain"
	"episodic/internal/library"
	"episodic/internal/log"
	"episodic/internal/transfer"
)

// commandContext carries lazily initialized configuration and logging
// shared by all subcommands.
type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	logOnce sync.Once
	log     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.LoadConfig(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger returns the shared application logger, falling back to a null
// logger when file logging cannot be set up.
func (c *commandContext) logger() *slog.Logger {
	c.logOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.log = log.NullLogger()
			return
		}
		logger, err := log.SetupLogger(&cfg.Logging)
		if err != nil {
			logger = log.NullLogger()
		}
		slog.SetDefault(logger)
		c.log = logger
	})
	return c.log
}

// dataDir resolves the directory holding the series datastore.
func (c *commandContext) dataDir() (string, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	dir, err := cfg.DataDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrNoDataDir, err)
	}
	return dir, nil
}

// openStore opens the shared datastore handle. Callers own the handle
// and must close it.
func (c *commandContext) openStore() (*datastore.Store, error) {
	dir, err := c.dataDir()
	if err != nil {
		return nil, err
	}
	return datastore.Open(dir, c.logger())
}

// catalogClient builds the remote catalog client from configuration.
func (c *commandContext) catalogClient() (*catalog.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Country, cfg.Catalog.Timeout(), c.logger()), nil
}

// withService opens the datastore, wires the library service and runs fn.
// The datastore handle is closed when fn returns.
func (c *commandContext) withService(fn func(*library.Service) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	cacheRoot, err := cfg.CacheDir()
	if err != nil {
		return err
	}
	client, err := c.catalogClient()
	if err != nil {
		return err
	}
	store, err := c.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	svc := library.NewService(store, cache.New(cacheRoot, c.logger()), client, c.logger())
	return fn(svc)
}

// transferManager builds the collection transfer manager. It does not
// open the datastore; transfers take their own exclusive lock.
func (c *commandContext) transferManager() (*transfer.Manager, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return transfer.New(cfg.DataDir, c.logger()), nil
}
