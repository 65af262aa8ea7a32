package exchange

import "fmt"

var (
	ErrorInvalidAmount       = fmt.Errorf("invalid amount")
	ErrorInsufficientReserve = fmt.Errorf("insufficient reserve")
	ErrorInsufficientPool    = fmt.Errorf("insufficient fee pool")
	ErrorNothingToUnlock     = fmt.Errorf("nothing to unlock")
	ErrorNotMajority         = fmt.Errorf("not majority holder")
	ErrorFeePoolTooLow       = fmt.Errorf("fee pool below unlock threshold")
	ErrorUnauthorized        = fmt.Errorf("unauthorized")
	ErrorInvalidAccount      = fmt.Errorf("invalid account")
)

// ErrorKind names the rejection class of err, or "unknown" if it is not an engine error.
// It is used as a metric label.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case is(err, ErrorInvalidAmount):
		return "invalid_amount"
	case is(err, ErrorInsufficientReserve):
		return "insufficient_reserve"
	case is(err, ErrorInsufficientPool):
		return "insufficient_pool"
	case is(err, ErrorNothingToUnlock):
		return "nothing_to_unlock"
	case is(err, ErrorNotMajority):
		return "not_majority"
	case is(err, ErrorFeePoolTooLow):
		return "fee_pool_too_low"
	case is(err, ErrorUnauthorized):
		return "unauthorized"
	case is(err, ErrorInvalidAccount):
		return "invalid_account"
	default:
		return "unknown"
	}
}
