package config

import (
	"bytes"
	"errors"
	"os"

	"github.com/imharvol/cienciathon-2021/pkg/auth"
	"github.com/imharvol/cienciathon-2021/pkg/extractor"
	"github.com/imharvol/cienciathon-2021/pkg/keyword"
	"github.com/imharvol/cienciathon-2021/pkg/segmenter"
	"github.com/imharvol/cienciathon-2021/pkg/storage"
	"github.com/imharvol/cienciathon-2021/pkg/store"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Address string

	Authorizers []auth.Provider

	Ingest IngestConfig
	Views  ViewsConfig

	storage   storage.Provider
	segmenter segmenter.Provider
	store     store.Provider

	extractors map[string]extractor.Provider
	keyworders map[string]keyword.Provider
}

// Parse reads the YAML configuration at path. Variables from a .env file in
// the working directory are loaded first so that ${VAR} references resolve.
func Parse(path string) (*Config, error) {
	if err := loadEnv(".env"); err != nil {
		return nil, err
	}

	file, err := parseFile(path)

	if err != nil {
		return nil, err
	}

	c := &Config{
		Address: ":8080",
	}

	if file.Address != "" {
		c.Address = file.Address
	}

	if err := c.registerAuthorizer(file); err != nil {
		return nil, err
	}

	if err := c.registerStorage(file); err != nil {
		return nil, err
	}

	if err := c.registerExtractors(file); err != nil {
		return nil, err
	}

	if err := c.registerKeyworders(file); err != nil {
		return nil, err
	}

	if err := c.registerSegmenter(file); err != nil {
		return nil, err
	}

	if err := c.registerDatabase(file); err != nil {
		return nil, err
	}

	if err := c.registerIngest(file); err != nil {
		return nil, err
	}

	return c, nil
}

// Close releases the database handle.
func (c *Config) Close() error {
	if c.store == nil {
		return nil
	}

	return c.store.Close()
}

type configFile struct {
	Address string `yaml:"address"`

	Authorizers []authorizerConfig `yaml:"authorizers"`

	Storage *storageConfig `yaml:"storage"`

	Extractors yaml.Node `yaml:"extractors"`
	Keywords   yaml.Node `yaml:"keywords"`

	Segmenter *segmenterConfig `yaml:"segmenter"`
	Database  *databaseConfig  `yaml:"database"`

	Ingest *IngestConfig `yaml:"ingest"`
	Views  *ViewsConfig  `yaml:"views"`
}

func loadEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return godotenv.Load(path)
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createLimiter(limit *int) *rate.Limiter {
	if limit == nil {
		return nil
	}

	return rate.NewLimiter(rate.Limit(*limit), *limit)
}
