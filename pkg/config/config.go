// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mchmarny/recipebox/pkg/defaults"
	"github.com/mchmarny/recipebox/pkg/store"
)

// Config is the service configuration.
type Config struct {
	Port            int           `yaml:"port"`
	LogLevel        string        `yaml:"logLevel"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	Database        Database      `yaml:"database"`
	Auth            Auth          `yaml:"auth"`
	OpenAI          Model         `yaml:"openai"`
	Gemini          Model         `yaml:"gemini"`
	Images          Images        `yaml:"images"`
}

// Database selects the persistence engine.
type Database struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Debug  bool   `yaml:"debug"`
}

// Auth configures token signing.
type Auth struct {
	JWTSecret string        `yaml:"jwtSecret"`
	TokenTTL  time.Duration `yaml:"tokenTTL"`
}

// Model configures a remote model client. An empty APIKey disables it.
type Model struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
}

// Enabled reports whether the client is configured.
func (m Model) Enabled() bool {
	return m.APIKey != ""
}

// Images selects the image store. Bucket wins over Dir. Neither disables
// image uploads.
type Images struct {
	Bucket  string `yaml:"bucket"`
	Dir     string `yaml:"dir"`
	BaseURL string `yaml:"baseUrl"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Port:            defaults.ServerPort,
		LogLevel:        "info",
		ShutdownTimeout: defaults.ServerShutdownTimeout,
		Database: Database{
			Driver: store.DriverSQLite,
			DSN:    "recipebox.db",
		},
		Auth: Auth{
			TokenTTL: defaults.TokenTTL,
		},
	}
}

// Load reads path, when not empty, over Default and then applies
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.Database.Driver, "DATABASE_DRIVER")
	setString(&c.Database.DSN, "DATABASE_DSN")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.OpenAI.APIKey, "OPENAI_API_KEY")
	setString(&c.OpenAI.Model, "OPENAI_MODEL")
	setString(&c.Gemini.APIKey, "GEMINI_API_KEY")
	setString(&c.Gemini.Model, "GEMINI_MODEL")
	setString(&c.Images.Bucket, "IMAGE_BUCKET")
	setString(&c.Images.Dir, "IMAGE_DIR")
	setString(&c.Images.BaseURL, "IMAGE_BASE_URL")

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Port = port
	}
	if v := os.Getenv("SHUTDOWN_TIMEOUT_SECONDS"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SHUTDOWN_TIMEOUT_SECONDS %q: %w", v, err)
		}
		c.ShutdownTimeout = time.Duration(seconds) * time.Second
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TOKEN_TTL %q: %w", v, err)
		}
		c.Auth.TokenTTL = ttl
	}
	return nil
}

// Validate checks the configuration. Only settings every command needs are
// required here. The server additionally requires a JWT secret.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive: %s", c.ShutdownTimeout)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive: %s", c.Auth.TokenTTL)
	}
	if c.Images.Dir != "" && c.Images.Bucket == "" && c.Images.BaseURL == "" {
		return fmt.Errorf("images.baseUrl is required with images.dir")
	}
	sc := c.Store()
	return sc.Validate()
}

// Store returns the database settings in store form.
func (c *Config) Store() store.Config {
	return store.Config{
		Driver:         strings.ToLower(c.Database.Driver),
		DSN:            c.Database.DSN,
		ConnectTimeout: defaults.DBConnectTimeout,
		Debug:          c.Database.Debug,
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
