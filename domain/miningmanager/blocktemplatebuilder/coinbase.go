package blocktemplatebuilder

import "github.com/kaspanet/kaspad/domain/consensus/model/externalapi"

// calcBlockSubsidy returns the block reward, before fees, for a block mined
// at daaScore. The reward halves every SubsidyReductionIntervalDAAScore units
// of DAA score, mirroring the network's original emission schedule.
//
// Building the exact reward a submitted block will be validated against
// requires walking its merge set's blue blocks and their acceptance data,
// which in turn requires the GHOSTDAG/acceptance stores that only exist once
// a block has already been inserted into the DAG. A template is built for a
// block that doesn't exist yet, so this is an estimate: consensus is the
// final arbiter once the mined block is submitted through
// ValidateAndInsertBlock.
func calcBlockSubsidy(config *Config, daaScore uint64) uint64 {
	if config.SubsidyReductionIntervalDAAScore == 0 {
		return config.BaseSubsidy
	}
	halvings := daaScore / config.SubsidyReductionIntervalDAAScore
	if halvings >= 64 {
		return 0
	}
	return config.BaseSubsidy >> halvings
}

// buildCoinbaseTransaction builds the coinbase transaction that pays
// totalFees plus the block subsidy to payScriptPublicKey.
func buildCoinbaseTransaction(config *Config, daaScore uint64, totalFees uint64,
	payScriptPublicKey *externalapi.ScriptPublicKey, extraData []byte) *externalapi.DomainTransaction {

	reward := calcBlockSubsidy(config, daaScore) + totalFees

	return &externalapi.DomainTransaction{
		Version:  0,
		Inputs:   []*externalapi.DomainTransactionInput{},
		Outputs: []*externalapi.DomainTransactionOutput{
			{
				Value:           reward,
				ScriptPublicKey: payScriptPublicKey,
			},
		},
		LockTime:     0,
		SubnetworkID: externalapi.SubnetworkIDCoinbase,
		Gas:          0,
		Payload:      extraData,
	}
}
