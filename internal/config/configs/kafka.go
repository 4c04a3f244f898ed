package configs

// Kafka configures the change-event publisher. Publishing is disabled when
// Brokers is empty.
type Kafka struct {
	Brokers  []string `env:"BROKERS" envSeparator:","`
	ClientID string   `env:"CLIENT_ID" envDefault:"campaign-manager"`
	Topic    string   `env:"TOPIC" envDefault:"campaign-changes"`
}

// Enabled reports whether any broker is configured.
func (c Kafka) Enabled() bool {
	return len(c.Brokers) > 0
}
