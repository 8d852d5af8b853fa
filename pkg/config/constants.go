package config

// EnvPrefix namespaces every environment variable read by envconfig.
const EnvPrefix = "STITCH"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv = "STITCH_APP_ENV"
	EnvPort   = "STITCH_APP_PORT"

	EnvDBDSN  = "STITCH_DB_DSN"
	EnvDBHost = "STITCH_DB_HOST"
	EnvDBUser = "STITCH_DB_USER"
	EnvDBName = "STITCH_DB_NAME"

	EnvRedisURL = "STITCH_REDIS_URL"

	EnvGCPProjectID          = "STITCH_GCP_PROJECT_ID"
	EnvPubSubStockSub        = "STITCH_PUBSUB_STOCK_SUBSCRIPTION"
	EnvCheckoutShippingFee   = "STITCH_CHECKOUT_SHIPPING_FEE_EGP"
	EnvCheckoutMaxOrderEGP   = "STITCH_CHECKOUT_MAX_ORDER_AMOUNT_EGP"
	EnvCheckoutRateWindow    = "STITCH_CHECKOUT_RATE_LIMIT_WINDOW"
	EnvCheckoutRateMaxOrders = "STITCH_CHECKOUT_RATE_LIMIT_MAX_ORDERS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
