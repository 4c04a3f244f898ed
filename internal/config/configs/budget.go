package configs

// Budget tunes the budget ledger. OverrunTolerance is the fraction of the
// total budget that spend may exceed it by; zero forbids any overrun.
type Budget struct {
	OverrunTolerance float64 `env:"OVERRUN_TOLERANCE" envDefault:"0"`
}
