package util

import (
	"fmt"
	"math/big"

	"github.com/dustin/go-humanize"

	"treasury/domain/exchange"
)

var tokenUnit = big.NewFloat(100_000_000)

func SatsString(amount exchange.Amount) string {
	return fmt.Sprintf("%v sats", humanize.BigComma(amount.ToBig()))
}

func TokenString(amount exchange.Amount, symbol string) string {
	whole := new(big.Float).Quo(new(big.Float).SetInt(amount.ToBig()), tokenUnit)
	return fmt.Sprintf("%v %v", humanize.BigCommaf(whole), symbol)
}
