/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"dirpx.dev/dxobj/dxcore/settings"
)

type serverConfig struct {
	Host string
	Port int
}

type appConfig struct {
	Name   string
	Server serverConfig
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile(%s) failed: %v", name, err)
	}
	return path
}

func TestLoadFromYAMLFile(t *testing.T) {
	path := writeFile(t, "config.yaml", "name: demo\nserver:\n  host: localhost\n  port: 8080\n")

	var cfg appConfig
	if err := settings.Load(&cfg, settings.WithFile(path)); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Name != "demo" || cfg.Server.Host != "localhost" || cfg.Server.Port != 8080 {
		t.Errorf("Load() = %+v, want name=demo host=localhost port=8080", cfg)
	}
}

func TestLoadFromJSONFile(t *testing.T) {
	path := writeFile(t, "config.json", `{"name":"demo","server":{"host":"h","port":9}}`)

	var cfg appConfig
	if err := settings.Load(&cfg, settings.WithFile(path)); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Name != "demo" || cfg.Server.Port != 9 {
		t.Errorf("Load() = %+v, want name=demo port=9", cfg)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	var cfg appConfig
	err := settings.Load(&cfg, settings.WithFile(filepath.Join(t.TempDir(), "absent.yaml")))
	if err == nil {
		t.Fatal("Load() with missing file should have failed")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MYAPP__NAME", "envdemo")
	t.Setenv("MYAPP__SERVER__PORT", "7070")
	t.Setenv("UNRELATED__NAME", "ignored")

	var cfg appConfig
	if err := settings.Load(&cfg, settings.WithEnv("MYAPP")); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Name != "envdemo" {
		t.Errorf("Name = %q, want %q", cfg.Name, "envdemo")
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
}

func TestLoadFromDotenv(t *testing.T) {
	path := writeFile(t, ".env", "MYAPP__NAME=dotdemo\nMYAPP__SERVER__HOST=dot.example\n")

	var cfg appConfig
	err := settings.Load(&cfg,
		settings.WithEnv("MYAPP"),
		settings.WithDotenv(path))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Name != "dotdemo" || cfg.Server.Host != "dot.example" {
		t.Errorf("Load() = %+v, want name=dotdemo host=dot.example", cfg)
	}
}

func TestLoadMissingDotenvFails(t *testing.T) {
	var cfg appConfig
	err := settings.Load(&cfg, settings.WithDotenv(filepath.Join(t.TempDir(), "no.env")))
	if err == nil {
		t.Fatal("Load() with missing dotenv file should have failed")
	}
}

func TestLoadDefaultPrecedence(t *testing.T) {
	dotenv := writeFile(t, ".env", "MYAPP__NAME=from-dotenv\nMYAPP__SERVER__HOST=from-dotenv\nMYAPP__SERVER__PORT=1\n")
	t.Setenv("MYAPP__NAME", "from-env")
	t.Setenv("MYAPP__SERVER__HOST", "from-env")
	file := writeFile(t, "config.yaml", "name: from-file\n")

	var cfg appConfig
	err := settings.Load(&cfg,
		settings.WithDotenv(dotenv),
		settings.WithEnv("MYAPP"),
		settings.WithFile(file),
		settings.WithOverrides(map[string]any{"name": "from-overrides"}))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Name != "from-overrides" {
		t.Errorf("Name = %q, want overrides to win", cfg.Name)
	}
	if cfg.Server.Host != "from-env" {
		t.Errorf("Server.Host = %q, want env to beat dotenv", cfg.Server.Host)
	}
	if cfg.Server.Port != 1 {
		t.Errorf("Server.Port = %d, want dotenv value 1 to survive", cfg.Server.Port)
	}
}

func TestLoadCustomSourceOrder(t *testing.T) {
	file := writeFile(t, "config.yaml", "name: from-file\n")

	var cfg appConfig
	err := settings.Load(&cfg,
		settings.WithFile(file),
		settings.WithOverrides(map[string]any{"name": "from-overrides"}),
		settings.WithSourceOrder(settings.SourceOverrides, settings.SourceFile))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Name != "from-file" {
		t.Errorf("Name = %q, want file to win under the reordered sources", cfg.Name)
	}
}

func TestLoadSourceOrderSkipsUnnamed(t *testing.T) {
	file := writeFile(t, "config.yaml", "name: from-file\nserver:\n  port: 5\n")

	var cfg appConfig
	err := settings.Load(&cfg,
		settings.WithFile(file),
		settings.WithOverrides(map[string]any{"name": "from-overrides"}),
		settings.WithSourceOrder(settings.SourceFile))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Name != "from-file" {
		t.Errorf("Name = %q, want the overrides layer skipped", cfg.Name)
	}
	if cfg.Server.Port != 5 {
		t.Errorf("Server.Port = %d, want 5", cfg.Server.Port)
	}
}

func TestLoadUnknownSourceFails(t *testing.T) {
	var cfg appConfig
	err := settings.Load(&cfg, settings.WithSourceOrder(settings.Source("bogus")))
	if err == nil {
		t.Fatal("Load() with an unknown source should have failed")
	}
}
