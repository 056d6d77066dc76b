package config

import (
	"errors"
	"strings"

	"github.com/imharvol/cienciathon-2021/pkg/keyword"
	"github.com/imharvol/cienciathon-2021/pkg/keyword/comprehend"
	"github.com/imharvol/cienciathon-2021/pkg/keyword/openai"
	"github.com/imharvol/cienciathon-2021/pkg/limiter"
	"github.com/imharvol/cienciathon-2021/pkg/otel"
)

func (c *Config) RegisterKeyworder(id string, p keyword.Provider) {
	if c.keyworders == nil {
		c.keyworders = make(map[string]keyword.Provider)
	}

	if _, ok := c.keyworders[""]; !ok {
		c.keyworders[""] = p
	}

	c.keyworders[id] = p
}

func (c *Config) Keyworder(id string) (keyword.Provider, error) {
	if c.keyworders != nil {
		if k, ok := c.keyworders[id]; ok {
			return k, nil
		}
	}

	return nil, errors.New("keyword provider not found: " + id)
}

type keywordConfig struct {
	Type string `yaml:"type"`

	URL    string `yaml:"url"`
	Token  string `yaml:"token"`
	Region string `yaml:"region"`

	Model    string `yaml:"model"`
	Language string `yaml:"language"`

	MinScore *float64 `yaml:"min_score"`

	Proxy *proxyConfig `yaml:"proxy"`

	Limit *int `yaml:"limit"`
}

func (c *Config) registerKeyworders(f *configFile) error {
	var configs map[string]keywordConfig

	if err := f.Keywords.Decode(&configs); err != nil {
		return err
	}

	for i := 0; i+1 < len(f.Keywords.Content); i += 2 {
		id := f.Keywords.Content[i].Value

		config, ok := configs[id]

		if !ok {
			continue
		}

		k, err := createKeyworder(config)

		if err != nil {
			return errors.Join(errors.New("keywords "+id), err)
		}

		k = limiter.NewKeyworder(createLimiter(config.Limit), k)
		k = otel.NewKeyworder(id, k)

		c.RegisterKeyworder(id, k)
	}

	return nil
}

func createKeyworder(cfg keywordConfig) (keyword.Provider, error) {
	switch strings.ToLower(cfg.Type) {
	case "comprehend":
		return comprehendKeyworder(cfg)

	case "openai":
		return openaiKeyworder(cfg)

	default:
		return nil, errors.New("invalid keyword type: " + cfg.Type)
	}
}

func comprehendKeyworder(cfg keywordConfig) (keyword.Provider, error) {
	var options []comprehend.Option

	if cfg.Region != "" {
		options = append(options, comprehend.WithRegion(cfg.Region))
	}

	if cfg.URL != "" {
		options = append(options, comprehend.WithURL(cfg.URL))
	}

	if cfg.Language != "" {
		options = append(options, comprehend.WithLanguage(cfg.Language))
	}

	if cfg.MinScore != nil {
		options = append(options, comprehend.WithMinScore(*cfg.MinScore))
	}

	return comprehend.New(options...)
}

func openaiKeyworder(cfg keywordConfig) (keyword.Provider, error) {
	if cfg.Model == "" {
		return nil, errors.New("openai keywords require a model")
	}

	var options []openai.Option

	if cfg.Token != "" {
		options = append(options, openai.WithToken(cfg.Token))
	}

	if cfg.MinScore != nil {
		options = append(options, openai.WithMinScore(*cfg.MinScore))
	}

	client, err := cfg.Proxy.proxyClient()

	if err != nil {
		return nil, err
	}

	if client != nil {
		options = append(options, openai.WithClient(client))
	}

	return openai.New(cfg.URL, cfg.Model, options...)
}
