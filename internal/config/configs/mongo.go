package configs

// Mongo configures the document-store campaign backend.
type Mongo struct {
	URI         string `env:"URI" envDefault:"mongodb://localhost:27017"`
	Database    string `env:"DATABASE" envDefault:"campaign_manager"`
	Collection  string `env:"COLLECTION" envDefault:"campaigns"`
	MaxPoolSize uint64 `env:"MAX_POOL_SIZE" envDefault:"100"`
	// MaxRetries is the number of extra connection attempts on startup.
	MaxRetries uint `env:"MAX_RETRIES" envDefault:"5"`
}
