package exchange

// Asset is one of the two assets a treasury moves.
type Asset uint8

const (
	AssetToken Asset = iota + 1
	AssetCurrency
)

func (a Asset) String() string {
	switch a {
	case AssetToken:
		return "token"
	case AssetCurrency:
		return "sats"
	default:
		return "unknown"
	}
}

// Transfer is an asset movement the host ledger must execute atomically with the state change
// that produced it.
type Transfer struct {
	Asset  Asset
	Amount Amount
	From   AccountID
	To     AccountID
}

type Operation string

const (
	OpBuy           Operation = "buy"
	OpSell          Operation = "sell"
	OpLock          Operation = "lock"
	OpUnlock        Operation = "unlock"
	OpClaimMajority Operation = "claim_majority"
	OpWithdrawFees  Operation = "withdraw_fees"
)

// Receipt describes one committed operation: who called it, the ordered transfers, and the
// headline amount (tokens out for a buy, currency out for a sell, the requested amount
// otherwise).
type Receipt struct {
	Op        Operation
	Caller    AccountID
	Amount    Amount
	Transfers []Transfer

	// set for buy and sell only
	Buy  *BuyQuote
	Sell *SellQuote
}
