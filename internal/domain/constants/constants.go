package constants

// Environments
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Pub/Sub providers
const (
	PubSubProviderNoop   = "noop"
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Gazetteer sources
const (
	GazetteerSourceBuiltin = "builtin"
)

// Supported assistant languages
const (
	LanguageEnglish = "en"
	LanguageTamil   = "ta"
)
