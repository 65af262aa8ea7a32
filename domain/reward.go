package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"treasury/domain/exchange"
)

// RewardSnapshot captures the fee counters of a treasury for reward reporting.
type RewardSnapshot struct {
	Symbol            string             `json:"symbol"`
	FeePool           exchange.Amount    `json:"fee_pool"`
	TotalSwapFeesSent exchange.Amount    `json:"total_swap_fees_sent"`
	MajorityHolder    exchange.AccountID `json:"majority_holder,omitempty"`
	HolderLocked      exchange.Amount    `json:"holder_locked"`
	TotalLocked       exchange.Amount    `json:"total_locked"`
	// HolderShare is HolderLocked / TotalLocked, zero when nothing is locked.
	HolderShare decimal.Decimal `json:"holder_share"`
	Time        time.Time       `json:"time"`
}
