package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Database.Provider != "postgresql" {
		t.Errorf("Expected database provider to be 'postgresql', got '%s'", cfg.Database.Provider)
	}
	if cfg.Database.URLEnv != "DATABASE_URL" {
		t.Errorf("Expected database url_env to be 'DATABASE_URL', got '%s'", cfg.Database.URLEnv)
	}
	if cfg.Generation.Seed != 42 || cfg.Generation.Customers != 500000 || cfg.Generation.Orders != 500000 {
		t.Errorf("unexpected generation defaults: %+v", cfg.Generation)
	}
	if !cfg.Generation.EmitLinks {
		t.Error("Expected emit_links to default to true")
	}
	if cfg.Generation.StartDate != "2023-01-01" {
		t.Errorf("Expected start_date 2023-01-01, got %s", cfg.Generation.StartDate)
	}
	if cfg.Duplicates.Rate != 0.2 || cfg.Duplicates.ExactContactShare != 0.8 || cfg.Duplicates.FuzzyTypoShare != 0.5 {
		t.Errorf("unexpected duplicate defaults: %+v", cfg.Duplicates)
	}
	if cfg.Distribution.CountryPresent != 0.95 || cfg.Distribution.EmailPresent != 0.8 {
		t.Errorf("unexpected distribution defaults: %+v", cfg.Distribution)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "retailgen.config.yaml")
	content := `
database:
  provider: sqlite
  url_env: RETAILGEN_TEST_URL
generation:
  seed: 7
  customers: 1000
  orders: 800
  customer_batch: 250
  end_date: "2024-12-31"
  emit_links: false
distribution:
  country_weights:
    US: 0
    DE: 2.5
duplicates:
  rate: 0.1
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}
	cfg, err := LoadFrom(v)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Database.Provider != "sqlite" || cfg.Database.URLEnv != "RETAILGEN_TEST_URL" {
		t.Errorf("unexpected database section: %+v", cfg.Database)
	}
	if cfg.Generation.Seed != 7 || cfg.Generation.Customers != 1000 || cfg.Generation.EmitLinks {
		t.Errorf("unexpected generation section: %+v", cfg.Generation)
	}
	if cfg.Duplicates.Rate != 0.1 || cfg.Duplicates.ExactContactShare != 0.8 {
		t.Errorf("file values should merge with defaults: %+v", cfg.Duplicates)
	}
	if cfg.Loader.ChunkSize != DefaultChunk {
		t.Errorf("Expected default chunk size, got %d", cfg.Loader.ChunkSize)
	}

	model, err := cfg.Model()
	if err != nil {
		t.Fatalf("Model failed: %v", err)
	}
	for i := 0; i < model.Countries(); i++ {
		c := model.Country(i)
		if c.Code == "US" && c.Weight != 0 {
			t.Errorf("US weight override not applied: %v", c.Weight)
		}
		if c.Code == "DE" && c.Weight != 2.5 {
			t.Errorf("DE weight override not applied: %v", c.Weight)
		}
	}

	c, o, tx := cfg.Batches()
	if c != 250 || o != 800 || tx != 800 {
		t.Errorf("Batches() = %d, %d, %d", c, o, tx)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("config should be valid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown provider", func(c *Config) { c.Database.Provider = "oracle" }},
		{"negative customers", func(c *Config) { c.Generation.Customers = -5 }},
		{"negative order batch", func(c *Config) { c.Generation.OrderBatch = -1 }},
		{"customer batch above total", func(c *Config) { c.Generation.CustomerBatch = 500001 }},
		{"transaction batch above orders", func(c *Config) {
			c.Generation.Orders = 10
			c.Generation.TransactionBatch = 11
		}},
		{"orders without customers", func(c *Config) { c.Generation.Customers = 0 }},
		{"zero workers", func(c *Config) { c.Generation.Workers = 0 }},
		{"zero chunk", func(c *Config) { c.Loader.ChunkSize = 0 }},
		{"bad start date", func(c *Config) { c.Generation.StartDate = "01/01/2023" }},
		{"end before start", func(c *Config) { c.Generation.EndDate = "2022-12-31" }},
		{"duplicate rate above one", func(c *Config) { c.Duplicates.Rate = 1.5 }},
		{"negative typo rate", func(c *Config) { c.Duplicates.TypoRate = -0.1 }},
		{"presence rate above one", func(c *Config) { c.Distribution.EmailPresent = 2 }},
		{"unknown country weight", func(c *Config) {
			c.Distribution.CountryWeights = map[string]float64{"XX": 1}
		}},
		{"all weights zero", func(c *Config) {
			c.Distribution.CountryWeights = map[string]float64{}
			model, _ := Default().Model()
			for i := 0; i < model.Countries(); i++ {
				c.Distribution.CountryWeights[model.Country(i).Code] = 0
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestBatchesDefaultToTotal(t *testing.T) {
	cfg := Default()
	cfg.Generation.Customers = 100
	cfg.Generation.Orders = 20000

	c, o, tx := cfg.Batches()
	if c != 100 || o != DefaultBatch || tx != DefaultBatch {
		t.Errorf("Batches() = %d, %d, %d", c, o, tx)
	}

	cfg.Generation.TransactionBatch = 500
	if _, _, tx := cfg.Batches(); tx != 500 {
		t.Errorf("explicit transaction batch ignored: %d", tx)
	}
}

func TestGetDatabaseURL(t *testing.T) {
	cfg := Default()
	cfg.Database.URLEnv = "RETAILGEN_TEST_DATABASE_URL"

	t.Setenv("RETAILGEN_TEST_DATABASE_URL", "")
	if _, err := cfg.GetDatabaseURL(); err == nil {
		t.Error("Expected an error when the variable is empty")
	}

	t.Setenv("RETAILGEN_TEST_DATABASE_URL", "postgres://localhost/retail")
	url, err := cfg.GetDatabaseURL()
	if err != nil || url != "postgres://localhost/retail" {
		t.Errorf("GetDatabaseURL() = %q, %v", url, err)
	}

	cfg.Database.Provider = "memory"
	if _, err := cfg.GetDatabaseURL(); err != nil {
		t.Errorf("memory provider needs no URL: %v", err)
	}
}
