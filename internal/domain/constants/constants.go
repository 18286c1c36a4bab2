package constants

const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Pub/Sub providers accepted in config.pubsub.provider
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

const (
	HeaderRequestID = "X-Request-Id"

	// Map instance id path parameter shared by every workspace route
	ParamMapID = "mapId"
)
