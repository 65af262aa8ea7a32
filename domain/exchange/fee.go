package exchange

// Fee fractions. The gross fee is taken from the trade amount and both shares are derived
// from the gross fee, never from the trade amount itself.
const (
	FeeNumerator         = 21
	FeeDenominator       = 1000
	SwapFeeNumerator     = 6
	MajorityFeeNumerator = 15
	SplitDenominator     = 21
)

// FeeSplit is the 2.1% fee on a trade amount split into its platform and majority-pool parts.
// Swap + Majority may be less than Gross by at most one unit of rounding.
type FeeSplit struct {
	Gross    Amount `json:"gross"`
	Swap     Amount `json:"swap"`
	Majority Amount `json:"majority"`
}

// SplitFee computes the fee split of base. Buy and sell quotes both go through here.
func SplitFee(base *Amount) FeeSplit {
	gross := mulDiv64(base, FeeNumerator, FeeDenominator)
	return FeeSplit{
		Gross:    gross,
		Swap:     mulDiv64(&gross, SwapFeeNumerator, SplitDenominator),
		Majority: mulDiv64(&gross, MajorityFeeNumerator, SplitDenominator),
	}
}
