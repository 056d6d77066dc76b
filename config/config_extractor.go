package config

import (
	"errors"
	"strings"
	"time"

	"github.com/imharvol/cienciathon-2021/pkg/extractor"
	"github.com/imharvol/cienciathon-2021/pkg/extractor/azure"
	"github.com/imharvol/cienciathon-2021/pkg/extractor/multi"
	"github.com/imharvol/cienciathon-2021/pkg/extractor/tesseract"
	"github.com/imharvol/cienciathon-2021/pkg/extractor/textract"
	"github.com/imharvol/cienciathon-2021/pkg/limiter"
	"github.com/imharvol/cienciathon-2021/pkg/otel"
)

func (c *Config) RegisterExtractor(id string, p extractor.Provider) {
	if c.extractors == nil {
		c.extractors = make(map[string]extractor.Provider)
	}

	if _, ok := c.extractors[""]; !ok {
		c.extractors[""] = p
	}

	c.extractors[id] = p
}

func (c *Config) Extractor(id string) (extractor.Provider, error) {
	if c.extractors != nil {
		if e, ok := c.extractors[id]; ok {
			return e, nil
		}
	}

	return nil, errors.New("extractor not found: " + id)
}

type extractorConfig struct {
	Type string `yaml:"type"`

	URL    string `yaml:"url"`
	Token  string `yaml:"token"`
	Region string `yaml:"region"`

	Languages []string `yaml:"languages"`

	PollInterval time.Duration `yaml:"poll_interval"`

	Proxy *proxyConfig `yaml:"proxy"`

	Limit *int `yaml:"limit"`
}

func (c *Config) registerExtractors(f *configFile) error {
	var configs map[string]extractorConfig

	if err := f.Extractors.Decode(&configs); err != nil {
		return err
	}

	var ids []string
	var extractors []extractor.Provider

	for i := 0; i+1 < len(f.Extractors.Content); i += 2 {
		id := f.Extractors.Content[i].Value

		config, ok := configs[id]

		if !ok {
			continue
		}

		e, err := createExtractor(config)

		if err != nil {
			return errors.Join(errors.New("extractor "+id), err)
		}

		e = limiter.NewExtractor(createLimiter(config.Limit), e)
		e = otel.NewExtractor(id, e)

		ids = append(ids, id)
		extractors = append(extractors, e)
	}

	// with several extractors the default tries each in configuration order
	if len(extractors) > 1 {
		c.RegisterExtractor("", multi.New(extractors...))
	}

	for i, e := range extractors {
		c.RegisterExtractor(ids[i], e)
	}

	return nil
}

func createExtractor(cfg extractorConfig) (extractor.Provider, error) {
	switch strings.ToLower(cfg.Type) {
	case "textract":
		return textractExtractor(cfg)

	case "azure":
		return azureExtractor(cfg)

	case "tesseract":
		return tesseractExtractor(cfg)

	default:
		return nil, errors.New("invalid extractor type: " + cfg.Type)
	}
}

func textractExtractor(cfg extractorConfig) (extractor.Provider, error) {
	var options []textract.Option

	if cfg.Region != "" {
		options = append(options, textract.WithRegion(cfg.Region))
	}

	if cfg.URL != "" {
		options = append(options, textract.WithURL(cfg.URL))
	}

	if cfg.PollInterval > 0 {
		options = append(options, textract.WithPollInterval(cfg.PollInterval))
	}

	return textract.New(options...)
}

func azureExtractor(cfg extractorConfig) (extractor.Provider, error) {
	var options []azure.Option

	if cfg.Token != "" {
		options = append(options, azure.WithToken(cfg.Token))
	}

	if cfg.PollInterval > 0 {
		options = append(options, azure.WithPollInterval(cfg.PollInterval))
	}

	client, err := cfg.Proxy.proxyClient()

	if err != nil {
		return nil, err
	}

	if client != nil {
		options = append(options, azure.WithClient(client))
	}

	return azure.New(cfg.URL, options...)
}

func tesseractExtractor(cfg extractorConfig) (extractor.Provider, error) {
	var options []tesseract.Option

	if len(cfg.Languages) > 0 {
		options = append(options, tesseract.WithLanguages(cfg.Languages...))
	}

	return tesseract.New(options...)
}
