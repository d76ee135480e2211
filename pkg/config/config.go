package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App     AppConfig
	Catalog CatalogConfig
	Pricing PricingConfig
	Format  FormatConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Catalog.ensureBaseURL(); err != nil {
		return nil, err
	}
	if err := cfg.Pricing.ensureTaxRate(); err != nil {
		return nil, err
	}
	if err := cfg.Format.ensureDigits(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CARTKIT_APP_ENV" required:"true"`
	Port         string `envconfig:"CARTKIT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CARTKIT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CARTKIT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type CatalogConfig struct {
	BaseURL      string        `envconfig:"CARTKIT_CATALOG_BASE_URL" default:"https://fakestoreapi.com"`
	Timeout      time.Duration `envconfig:"CARTKIT_CATALOG_TIMEOUT" default:"10s"`
	InitialLimit int           `envconfig:"CARTKIT_CATALOG_INITIAL_LIMIT" default:"4"`
}

func (c *CatalogConfig) ensureBaseURL() error {
	trimmed := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("catalog base url %q is not a valid absolute url", c.BaseURL)
	}
	if c.InitialLimit <= 0 {
		return fmt.Errorf("catalog initial limit must be positive, got %d", c.InitialLimit)
	}
	c.BaseURL = trimmed
	return nil
}

type PricingConfig struct {
	TaxRate               string        `envconfig:"CARTKIT_TAX_RATE" default:"0.20"`
	ShippingEstimateDelay time.Duration `envconfig:"CARTKIT_SHIPPING_ESTIMATE_DELAY" default:"600ms"`

	taxRate decimal.Decimal
}

func (p *PricingConfig) ensureTaxRate() error {
	rate, err := decimal.NewFromString(p.TaxRate)
	if err != nil {
		return fmt.Errorf("tax rate %q is not a decimal: %w", p.TaxRate, err)
	}
	if rate.IsNegative() {
		return fmt.Errorf("tax rate %q must be non-negative", p.TaxRate)
	}
	p.taxRate = rate
	return nil
}

// TaxRateDecimal returns the parsed tax rate fraction.
func (p PricingConfig) TaxRateDecimal() decimal.Decimal {
	return p.taxRate
}

type FormatConfig struct {
	Currency          string `envconfig:"CARTKIT_CURRENCY" default:"EUR"`
	Locale            string `envconfig:"CARTKIT_LOCALE" default:"de-DE"`
	MinFractionDigits uint8  `envconfig:"CARTKIT_MIN_FRACTION_DIGITS" default:"2"`
	MaxFractionDigits uint8  `envconfig:"CARTKIT_MAX_FRACTION_DIGITS" default:"2"`
}

func (f *FormatConfig) ensureDigits() error {
	if f.MinFractionDigits > f.MaxFractionDigits {
		return fmt.Errorf(
			"min fraction digits %d exceeds max fraction digits %d",
			f.MinFractionDigits, f.MaxFractionDigits,
		)
	}
	if len(f.Currency) != 3 {
		return fmt.Errorf("currency %q must be a three-letter ISO code", f.Currency)
	}
	f.Currency = strings.ToUpper(f.Currency)
	return nil
}
