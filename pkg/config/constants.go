package config

const EnvPrefix = "CARTKIT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Env variable names, kept in one place so tests and deploy tooling
// don't drift from the struct tags.
const (
	EnvAppEnv       = "CARTKIT_APP_ENV"
	EnvPort         = "CARTKIT_APP_PORT"
	EnvLogLevel     = "CARTKIT_LOG_LEVEL"
	EnvLogWarnStack = "CARTKIT_LOG_WARN_STACK"

	EnvCatalogBaseURL      = "CARTKIT_CATALOG_BASE_URL"
	EnvCatalogTimeout      = "CARTKIT_CATALOG_TIMEOUT"
	EnvCatalogInitialLimit = "CARTKIT_CATALOG_INITIAL_LIMIT"

	EnvTaxRate               = "CARTKIT_TAX_RATE"
	EnvShippingEstimateDelay = "CARTKIT_SHIPPING_ESTIMATE_DELAY"

	EnvCurrency          = "CARTKIT_CURRENCY"
	EnvLocale            = "CARTKIT_LOCALE"
	EnvMinFractionDigits = "CARTKIT_MIN_FRACTION_DIGITS"
	EnvMaxFractionDigits = "CARTKIT_MAX_FRACTION_DIGITS"
)
