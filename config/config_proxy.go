package config

import (
	"net/http"
	"net/url"
)

type proxyConfig struct {
	URL string `yaml:"url"`
}

// proxyClient returns an http.Client routed through the proxy, or nil when
// no proxy is configured.
func (cfg *proxyConfig) proxyClient() (*http.Client, error) {
	if cfg == nil || cfg.URL == "" {
		return nil, nil
	}

	proxyURL, err := url.Parse(cfg.URL)

	if err != nil {
		return nil, err
	}

	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.Proxy = http.ProxyURL(proxyURL)

	return &http.Client{
		Transport: tr,
	}, nil
}
