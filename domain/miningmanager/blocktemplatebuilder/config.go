package blocktemplatebuilder

// Config holds the policy knobs the block template builder consults while
// packing a new block's transactions and coinbase.
type Config struct {
	MaximumMassPerBlock uint64

	// BaseSubsidy is the block reward, in sompi, paid before any halving.
	BaseSubsidy uint64

	// SubsidyReductionIntervalDAAScore is how many DAA-score units pass
	// between subsidy halvings. Zero disables halving.
	SubsidyReductionIntervalDAAScore uint64
}

// DefaultConfig returns policy defaults: the network's original base
// subsidy, with subsidy halving disabled.
func DefaultConfig(maximumMassPerBlock uint64) *Config {
	return &Config{
		MaximumMassPerBlock:               maximumMassPerBlock,
		BaseSubsidy:                       5_000_000_000,
		SubsidyReductionIntervalDAAScore:  0,
	}
}
