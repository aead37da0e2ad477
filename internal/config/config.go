package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/Rana718/retailgen/internal/distribution"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned by Validate. A run never starts with an
// invalid configuration.
var ErrInvalidConfig = errors.New("invalid configuration")

const (
	FileName      = "retailgen.config"
	EnvPrefix     = "RETAILGEN"
	DefaultBatch  = 10000
	DefaultChunk  = 50000
	DefaultStart  = "2023-01-01"
	DefaultURLEnv = "DATABASE_URL"
)

// Providers lists the accepted database.provider names.
var Providers = []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3", "memory"}

type Config struct {
	Database     Database     `json:"database" mapstructure:"database" yaml:"database"`
	Generation   Generation   `json:"generation" mapstructure:"generation" yaml:"generation"`
	Distribution Distribution `json:"distribution" mapstructure:"distribution" yaml:"distribution"`
	Duplicates   Duplicates   `json:"duplicates" mapstructure:"duplicates" yaml:"duplicates"`
	Loader       Loader       `json:"loader" mapstructure:"loader" yaml:"loader"`
	Output       Output       `json:"output" mapstructure:"output" yaml:"output"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider" yaml:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env" yaml:"url_env"`
}

// Generation holds the run parameters. A zero batch size means "as large as
// the default allows" and is resolved by Batches.
type Generation struct {
	Seed             int64  `json:"seed" mapstructure:"seed" yaml:"seed"`
	Customers        int    `json:"customers" mapstructure:"customers" yaml:"customers"`
	Orders           int    `json:"orders" mapstructure:"orders" yaml:"orders"`
	CustomerBatch    int    `json:"customer_batch" mapstructure:"customer_batch" yaml:"customer_batch"`
	OrderBatch       int    `json:"order_batch" mapstructure:"order_batch" yaml:"order_batch"`
	TransactionBatch int    `json:"transaction_batch" mapstructure:"transaction_batch" yaml:"transaction_batch"` // orders per transaction batch
	Workers          int    `json:"workers" mapstructure:"workers" yaml:"workers"`
	StartDate        string `json:"start_date" mapstructure:"start_date" yaml:"start_date"`
	EndDate          string `json:"end_date,omitempty" mapstructure:"end_date" yaml:"end_date,omitempty"` // empty: today
	EmitLinks        bool   `json:"emit_links" mapstructure:"emit_links" yaml:"emit_links"`
}

type Distribution struct {
	CountryPresent    float64            `json:"country_present" mapstructure:"country_present" yaml:"country_present"`
	BirthDatePresent  float64            `json:"birth_date_present" mapstructure:"birth_date_present" yaml:"birth_date_present"`
	EmailPresent      float64            `json:"email_present" mapstructure:"email_present" yaml:"email_present"`
	PhonePresent      float64            `json:"phone_present" mapstructure:"phone_present" yaml:"phone_present"`
	NameBasedEmail    float64            `json:"name_based_email" mapstructure:"name_based_email" yaml:"name_based_email"`
	EcommerceCustomer float64            `json:"ecommerce_customer" mapstructure:"ecommerce_customer" yaml:"ecommerce_customer"`
	EcommerceOrder    float64            `json:"ecommerce_order" mapstructure:"ecommerce_order" yaml:"ecommerce_order"`
	NameTypoRate      float64            `json:"name_typo_rate" mapstructure:"name_typo_rate" yaml:"name_typo_rate"`
	PriceNoise        float64            `json:"price_noise" mapstructure:"price_noise" yaml:"price_noise"`
	CountryWeights    map[string]float64 `json:"country_weights,omitempty" mapstructure:"country_weights" yaml:"country_weights,omitempty"`
}

type Duplicates struct {
	Rate              float64 `json:"rate" mapstructure:"rate" yaml:"rate"`
	ExactContactShare float64 `json:"exact_contact_share" mapstructure:"exact_contact_share" yaml:"exact_contact_share"`
	FuzzyTypoShare    float64 `json:"fuzzy_typo_share" mapstructure:"fuzzy_typo_share" yaml:"fuzzy_typo_share"`
	TypoRate          float64 `json:"typo_rate" mapstructure:"typo_rate" yaml:"typo_rate"`
}

type Loader struct {
	ChunkSize int `json:"chunk_size" mapstructure:"chunk_size" yaml:"chunk_size"`
}

type Output struct {
	ManifestPath string `json:"manifest_path" mapstructure:"manifest_path" yaml:"manifest_path"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	rates := distribution.DefaultRates()

	v.SetDefault("database.provider", "postgresql")
	v.SetDefault("database.url_env", DefaultURLEnv)

	v.SetDefault("generation.seed", 42)
	v.SetDefault("generation.customers", 500000)
	v.SetDefault("generation.orders", 500000)
	v.SetDefault("generation.customer_batch", 0)
	v.SetDefault("generation.order_batch", 0)
	v.SetDefault("generation.transaction_batch", 0)
	v.SetDefault("generation.workers", 4)
	v.SetDefault("generation.start_date", DefaultStart)
	v.SetDefault("generation.end_date", "")
	v.SetDefault("generation.emit_links", true)

	v.SetDefault("distribution.country_present", rates.CountryPresent)
	v.SetDefault("distribution.birth_date_present", rates.BirthDatePresent)
	v.SetDefault("distribution.email_present", rates.EmailPresent)
	v.SetDefault("distribution.phone_present", rates.PhonePresent)
	v.SetDefault("distribution.name_based_email", rates.NameBasedEmail)
	v.SetDefault("distribution.ecommerce_customer", rates.EcommerceCustomer)
	v.SetDefault("distribution.ecommerce_order", rates.EcommerceOrder)
	v.SetDefault("distribution.name_typo_rate", rates.NameTypo)
	v.SetDefault("distribution.price_noise", rates.PriceNoise)

	v.SetDefault("duplicates.rate", 0.20)
	v.SetDefault("duplicates.exact_contact_share", 0.80)
	v.SetDefault("duplicates.fuzzy_typo_share", 0.50)
	v.SetDefault("duplicates.typo_rate", 0.15)

	v.SetDefault("loader.chunk_size", DefaultChunk)
	v.SetDefault("output.manifest_path", "retailgen.manifest.yaml")
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = DefaultURLEnv
	}
	if cfg.Generation.StartDate == "" {
		cfg.Generation.StartDate = DefaultStart
	}
	return &cfg, nil
}

// Default returns the configuration used when no file, env or flag overrides
// anything.
func Default() *Config {
	cfg, err := LoadFrom(viper.New())
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) GetDatabaseURL() (string, error) {
	if c.Database.Provider == "memory" {
		return "", nil
	}
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

func (c *Config) Rates() distribution.Rates {
	d := c.Distribution
	return distribution.Rates{
		CountryPresent:    d.CountryPresent,
		BirthDatePresent:  d.BirthDatePresent,
		EmailPresent:      d.EmailPresent,
		PhonePresent:      d.PhonePresent,
		NameBasedEmail:    d.NameBasedEmail,
		EcommerceCustomer: d.EcommerceCustomer,
		EcommerceOrder:    d.EcommerceOrder,
		NameTypo:          d.NameTypoRate,
		PriceNoise:        d.PriceNoise,
	}
}

// Model builds the distribution model the configuration describes.
func (c *Config) Model() (*distribution.Model, error) {
	countries, err := distribution.WithWeights(distribution.DefaultCountries(), c.Distribution.CountryWeights)
	if err != nil {
		return nil, err
	}
	return distribution.NewModel(countries, c.Rates(), distribution.DefaultCatalog())
}

// Window returns the order date range. An empty end date means today.
func (c *Config) Window() (time.Time, time.Time, error) {
	start, err := time.Parse(time.DateOnly, c.Generation.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date %q: %w", c.Generation.StartDate, err)
	}
	end := time.Now().UTC()
	if c.Generation.EndDate != "" {
		end, err = time.Parse(time.DateOnly, c.Generation.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date %q: %w", c.Generation.EndDate, err)
		}
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date %s is before start_date %s",
			end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	return start, end, nil
}

// Batches resolves the effective customer, order and transaction batch sizes.
// Transaction batches are counted in orders.
func (c *Config) Batches() (customers, orders, transactions int) {
	g := c.Generation
	customers = resolveBatch(g.CustomerBatch, g.Customers)
	orders = resolveBatch(g.OrderBatch, g.Orders)
	transactions = resolveBatch(g.TransactionBatch, g.Orders)
	if g.TransactionBatch == 0 {
		transactions = orders
	}
	return customers, orders, transactions
}

func resolveBatch(batch, total int) int {
	if batch > 0 {
		return batch
	}
	return max(min(DefaultBatch, total), 1)
}

func (c *Config) Validate() error {
	if !slices.Contains(Providers, c.Database.Provider) {
		return fmt.Errorf("%w: unsupported database provider: %s. Supported providers: %v",
			ErrInvalidConfig, c.Database.Provider, Providers)
	}

	g := c.Generation
	counts := []struct {
		name  string
		value int
	}{
		{"customers", g.Customers},
		{"orders", g.Orders},
		{"customer_batch", g.CustomerBatch},
		{"order_batch", g.OrderBatch},
		{"transaction_batch", g.TransactionBatch},
		{"workers", g.Workers},
	}
	for _, n := range counts {
		if n.value < 0 {
			return fmt.Errorf("%w: %s cannot be negative (got %d)", ErrInvalidConfig, n.name, n.value)
		}
	}
	if g.Workers == 0 {
		return fmt.Errorf("%w: workers must be at least 1", ErrInvalidConfig)
	}
	if g.Orders > 0 && g.Customers == 0 {
		return fmt.Errorf("%w: orders need at least one customer", ErrInvalidConfig)
	}

	batches := []struct {
		name         string
		batch, total int
	}{
		{"customer_batch", g.CustomerBatch, g.Customers},
		{"order_batch", g.OrderBatch, g.Orders},
		{"transaction_batch", g.TransactionBatch, g.Orders},
	}
	for _, b := range batches {
		if b.batch > b.total && b.total > 0 {
			return fmt.Errorf("%w: %s %d is larger than the total count %d", ErrInvalidConfig, b.name, b.batch, b.total)
		}
	}
	if c.Loader.ChunkSize <= 0 {
		return fmt.Errorf("%w: loader.chunk_size must be positive", ErrInvalidConfig)
	}

	if _, _, err := c.Window(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	d := c.Duplicates
	shares := []struct {
		name  string
		value float64
	}{
		{"duplicates.rate", d.Rate},
		{"duplicates.exact_contact_share", d.ExactContactShare},
		{"duplicates.fuzzy_typo_share", d.FuzzyTypoShare},
		{"duplicates.typo_rate", d.TypoRate},
	}
	for _, s := range shares {
		if !(s.value >= 0 && s.value <= 1) {
			return fmt.Errorf("%w: %s must be within [0, 1] (got %v)", ErrInvalidConfig, s.name, s.value)
		}
	}

	if _, err := c.Model(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
