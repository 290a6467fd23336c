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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/recipebox/pkg/defaults"
	"github.com/mchmarny/recipebox/pkg/store"
)

var envKeys = []string{
	"PORT", "LOG_LEVEL", "SHUTDOWN_TIMEOUT_SECONDS", "DATABASE_DRIVER", "DATABASE_DSN",
	"JWT_SECRET", "TOKEN_TTL", "OPENAI_API_KEY", "OPENAI_MODEL", "GEMINI_API_KEY",
	"GEMINI_MODEL", "IMAGE_BUCKET", "IMAGE_DIR", "IMAGE_BASE_URL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, defaults.ServerPort, cfg.Port)
	assert.Equal(t, store.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, defaults.TokenTTL, cfg.Auth.TokenTTL)
	assert.False(t, cfg.OpenAI.Enabled())
	assert.False(t, cfg.Gemini.Enabled())
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
port: 9000
logLevel: debug
database:
  driver: postgres
  dsn: postgres://file
auth:
  jwtSecret: from-file-secret-value
  tokenTTL: 1h
openai:
  apiKey: sk-file
images:
  dir: /tmp/images
  baseUrl: http://localhost/images
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "postgres://file", cfg.Database.DSN)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.OpenAI.Enabled())
	assert.Equal(t, "/tmp/images", cfg.Images.Dir)

	t.Setenv("PORT", "9100")
	t.Setenv("DATABASE_DSN", "postgres://env")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "7")
	t.Setenv("GEMINI_API_KEY", "g-env")

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "postgres://env", cfg.Database.DSN)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 7*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.Gemini.Enabled())
	assert.Equal(t, "from-file-secret-value", cfg.Auth.JWTSecret)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{"bad port env", "", map[string]string{"PORT": "eighty"}},
		{"bad ttl env", "", map[string]string{"TOKEN_TTL": "forever"}},
		{"bad shutdown env", "", map[string]string{"SHUTDOWN_TIMEOUT_SECONDS": "soon"}},
		{"zero shutdown", "", map[string]string{"SHUTDOWN_TIMEOUT_SECONDS": "0"}},
		{"unknown driver", "", map[string]string{"DATABASE_DRIVER": "mysql"}},
		{"postgres without dsn", "database:\n  driver: postgres\n  dsn: \"\"\n", nil},
		{"image dir without base url", "", map[string]string{"IMAGE_DIR": "/tmp/img"}},
		{"malformed yaml", "port: [", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeFile(t, tt.file)
			}
			_, err := Load(path)
			require.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
