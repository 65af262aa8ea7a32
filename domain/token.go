package domain

import (
	"fmt"
	"time"

	"treasury/domain/exchange"
)

var (
	ErrorTokenNotFound = fmt.Errorf("token not found")
	ErrorTokenExists   = fmt.Errorf("token already launched")
	ErrorInvalidSymbol = fmt.Errorf("symbol must be 2 to 12 letters or digits")
	ErrorInvalidName   = fmt.Errorf("name must be 1 to 64 characters")
)

type Token struct {
	Symbol     string             `json:"symbol"`
	Name       string             `json:"name"`
	Creator    exchange.AccountID `json:"creator"`
	Treasury   exchange.AccountID `json:"treasury"`
	LaunchTime time.Time          `json:"launch_time"`
}

// TreasurySnapshot is the read-only view of a treasury served to clients.
type TreasurySnapshot struct {
	Symbol             string             `json:"symbol"`
	Version            int64              `json:"version"`
	Treasury           exchange.AccountID `json:"treasury"`
	Platform           exchange.AccountID `json:"platform"`
	TokenBalance       exchange.Amount    `json:"token_balance"`
	CurrencyBalance    exchange.Amount    `json:"currency_balance"`
	VirtualCurrency    exchange.Amount    `json:"virtual_currency"`
	FeePool            exchange.Amount    `json:"fee_pool"`
	TotalSwapFeesSent  exchange.Amount    `json:"total_swap_fees_sent"`
	TotalLocked        exchange.Amount    `json:"total_locked"`
	MajorityHolder     exchange.AccountID `json:"majority_holder,omitempty"`
	LastWithdrawAmount exchange.Amount    `json:"last_withdraw_amount"`
	Threshold          exchange.Amount    `json:"threshold"`
	CanUnlock          bool               `json:"can_unlock"`
	Price              string             `json:"price"`
}
