/*
 * Copyright 2025 Tripwise Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package conf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/RanFeng/ilog"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type ModelConfig struct {
	Provider string `yaml:"provider"` // deepseek | openai | ark | ollama
	Name     string `yaml:"name"`
	APIKey   string `yaml:"api_key,omitempty"`
	BaseURL  string `yaml:"base_url,omitempty"`
}

type Config struct {
	Model struct {
		ModelConfig `yaml:",inline"`
		Fallbacks   []ModelConfig `yaml:"fallbacks,omitempty"`
	} `yaml:"model"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Cache struct {
		TTLSeconds int `yaml:"ttl_seconds"`
	} `yaml:"cache"`
	Retry struct {
		MaxAttempts      int `yaml:"max_attempts"`
		BaseDelaySeconds int `yaml:"base_delay_seconds"`
	} `yaml:"retry"`
	Search struct {
		SerperAPIKey  string `yaml:"serper_api_key,omitempty"`
		SerperBaseURL string `yaml:"serper_base_url"`
		MaxResults    int    `yaml:"max_results"`
		Region        string `yaml:"region"`
	} `yaml:"search"`
	Tools struct {
		OutageRate    float64 `yaml:"outage_rate"`
		MemoryWindow  int     `yaml:"memory_window"`
		MaxIterations int     `yaml:"max_iterations"`
	} `yaml:"tools"`
}

// envKeyByProvider maps a model provider to the environment variable that
// carries its API key when the key is absent from the YAML file.
var envKeyByProvider = map[string]string{
	"deepseek": "DEEPSEEK_API_KEY",
	"openai":   "OPENAI_API_KEY",
	"ark":      "ARK_API_KEY",
}

// Load reads the YAML config at path, fills secrets from the environment
// and applies defaults. A .env file next to the working directory is
// loaded first when present.
func Load(ctx context.Context, path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		dir, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		path = filepath.Join(dir, "conf", "tripwise.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	ilog.EventInfo(ctx, "load_config", "path", path, "provider", cfg.Model.Provider, "model", cfg.Model.Name)
	return cfg, nil
}

func (c *Config) applyEnv() {
	fill := func(mc *ModelConfig) {
		if mc.APIKey != "" {
			return
		}
		if key, ok := envKeyByProvider[mc.Provider]; ok {
			mc.APIKey = os.Getenv(key)
		}
	}
	fill(&c.Model.ModelConfig)
	for i := range c.Model.Fallbacks {
		fill(&c.Model.Fallbacks[i])
	}

	if c.Search.SerperAPIKey == "" {
		c.Search.SerperAPIKey = os.Getenv("SERPER_API_KEY")
	}
}

func (c *Config) applyDefaults() {
	if c.Model.Provider == "" {
		c.Model.Provider = "deepseek"
	}
	if c.Model.Name == "" {
		c.Model.Name = "deepseek-chat"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8888"
	}
	if c.Cache.TTLSeconds <= 0 {
		c.Cache.TTLSeconds = 3600
	}
	if c.Retry.MaxAttempts <= 0 {
		c.Retry.MaxAttempts = 3
	}
	if c.Retry.BaseDelaySeconds <= 0 {
		c.Retry.BaseDelaySeconds = 2
	}
	if c.Search.SerperBaseURL == "" {
		c.Search.SerperBaseURL = "https://google.serper.dev"
	}
	if c.Search.MaxResults <= 0 {
		c.Search.MaxResults = 10
	}
	if c.Tools.MemoryWindow <= 0 {
		c.Tools.MemoryWindow = 20
	}
	if c.Tools.MaxIterations <= 0 {
		c.Tools.MaxIterations = 10
	}
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

func (c *Config) RetryBaseDelay() time.Duration {
	return time.Duration(c.Retry.BaseDelaySeconds) * time.Second
}
