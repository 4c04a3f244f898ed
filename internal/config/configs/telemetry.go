package configs

// Telemetry configures OpenTelemetry tracing. An empty Endpoint leaves
// tracing disabled.
type Telemetry struct {
	Endpoint    string  `env:"ENDPOINT"`
	ServiceName string  `env:"SERVICE_NAME" envDefault:"campaign-manager"`
	SampleRatio float64 `env:"SAMPLE_RATIO" envDefault:"1"`
}
