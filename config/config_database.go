package config

import (
	"errors"
	"strings"

	"github.com/imharvol/cienciathon-2021/pkg/store"
	"github.com/imharvol/cienciathon-2021/pkg/store/memory"
	"github.com/imharvol/cienciathon-2021/pkg/store/mongo"
	"github.com/imharvol/cienciathon-2021/pkg/store/sqlite"
)

type databaseConfig struct {
	Type string `yaml:"type"`

	// sqlite
	Path string `yaml:"path"`

	// mongo
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
}

func (c *Config) Store() store.Provider {
	return c.store
}

func (c *Config) registerDatabase(f *configFile) error {
	cfg := databaseConfig{
		Type: "sqlite",
		Path: "database.db",
	}

	if f.Database != nil {
		cfg = *f.Database
	}

	s, err := createStore(cfg)

	if err != nil {
		return err
	}

	c.store = s

	return nil
}

func createStore(cfg databaseConfig) (store.Provider, error) {
	switch strings.ToLower(cfg.Type) {
	case "sqlite", "":
		return sqlite.New(sqlite.WithPath(cfg.Path))

	case "mongo", "mongodb":
		return mongoStore(cfg)

	case "memory":
		return memory.New()

	default:
		return nil, errors.New("invalid database type: " + cfg.Type)
	}
}

func mongoStore(cfg databaseConfig) (store.Provider, error) {
	if cfg.URL == "" {
		return nil, errors.New("mongo database requires a url")
	}

	var options []mongo.Option

	if cfg.Name != "" {
		options = append(options, mongo.WithDatabase(cfg.Name))
	}

	return mongo.New(cfg.URL, options...)
}
