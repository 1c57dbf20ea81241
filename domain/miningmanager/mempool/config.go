package mempool

// Config holds the mempool's tunable policy parameters. It replaces the
// network-wide dagconfig.Params dependency the mining manager used to take:
// mining policy is local node configuration, not a consensus rule, so it
// doesn't need to come from the same struct that describes the DAG's
// consensus parameters.
type Config struct {
	// MaximumTransactionCount bounds how many transactions the ready
	// transaction pool holds. Once exceeded, the lowest feerate transaction
	// is evicted to make room.
	MaximumTransactionCount int

	// MaximumOrphanTransactionCount bounds the number of transactions held
	// in the orphan pool. Once exceeded, a random non-high-priority orphan
	// is evicted to make room.
	MaximumOrphanTransactionCount int

	// MaximumOrphanTransactionSize bounds the estimated serialized size, in
	// bytes, of any single transaction admitted into the orphan pool.
	MaximumOrphanTransactionSize int

	// TransactionExpireIntervalDAAScore is how many DAA scores a
	// non-high-priority transaction may sit in the mempool before it's
	// expired.
	TransactionExpireIntervalDAAScore uint64

	// TransactionExpireScanIntervalDAAScore is the minimum number of DAA
	// scores that must elapse between successive sweeps for expired
	// transactions.
	TransactionExpireScanIntervalDAAScore uint64

	// OrphanExpireIntervalDAAScore is how many DAA scores a non-high-priority
	// orphan may sit in the orphan pool before it's expired.
	OrphanExpireIntervalDAAScore uint64

	// OrphanExpireScanIntervalDAAScore is the minimum number of DAA scores
	// that must elapse between successive sweeps for expired orphans.
	OrphanExpireScanIntervalDAAScore uint64

	// MaximumMassPerBlock bounds the total mass of transactions the block
	// template builder may pack into a single candidate block.
	MaximumMassPerBlock uint64

	// MinimumRelayTransactionFee is the minimum fee rate, in sompi per gram
	// of mass, for relay and block template inclusion. No admission or
	// template path reads it, so transactions paying less are not rejected.
	MinimumRelayTransactionFee uint64

	// AcceptNonStandardTransactions marks whether non-standard transactions
	// are accepted. The mempool runs no standardness checks and does not
	// read it.
	AcceptNonStandardTransactions bool
}

// DefaultConfig returns sensible mempool policy defaults.
func DefaultConfig(maximumMassPerBlock uint64) *Config {
	return &Config{
		MaximumTransactionCount:                1_000_000,
		MaximumOrphanTransactionCount:           100,
		MaximumOrphanTransactionSize:            100_000,
		TransactionExpireIntervalDAAScore:       3600,
		TransactionExpireScanIntervalDAAScore:   60,
		OrphanExpireIntervalDAAScore:            3600,
		OrphanExpireScanIntervalDAAScore:        60,
		MaximumMassPerBlock:                     maximumMassPerBlock,
		MinimumRelayTransactionFee:              1000,
		AcceptNonStandardTransactions:           false,
	}
}
