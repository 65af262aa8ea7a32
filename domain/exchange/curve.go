package exchange

// SellRoundingGuard is taken off every sell's curve output. Floor division of k leaves the
// treasury short by up to one unit per trade; the guard keeps that drift on the treasury's side.
var SellRoundingGuard = NewAmount(1)

type BuyQuote struct {
	Fee             FeeSplit `json:"fee"`
	NetCurrencyIn   Amount   `json:"net_currency_in"`
	TokensOut       Amount   `json:"tokens_out"`
	NewTokenBalance Amount   `json:"new_token_balance"`
}

type SellQuote struct {
	Fee             FeeSplit `json:"fee"`
	GrossCurveOut   Amount   `json:"gross_curve_out"`
	CurrencyOut     Amount   `json:"currency_out"`
	NewTokenBalance Amount   `json:"new_token_balance"`
}

// QuoteBuy prices spending currencyIn on tokens against the constant-product curve.
func QuoteBuy(s *State, currencyIn *Amount) (BuyQuote, error) {
	var q BuyQuote
	if currencyIn.IsZero() || !fits(currencyIn) {
		return q, ErrorInvalidAmount
	}

	curve := s.CurveCurrency()
	q.Fee = SplitFee(currencyIn)
	q.NetCurrencyIn = sub(currencyIn, &q.Fee.Gross)

	var newCurve Amount
	newCurve.Add(&curve, &q.NetCurrencyIn)
	if !fits(&newCurve) {
		return q, ErrorInvalidAmount
	}
	q.NewTokenBalance = MulDiv(&s.TokenBalance, &curve, &newCurve)
	q.TokensOut = sub(&s.TokenBalance, &q.NewTokenBalance)
	return q, nil
}

// QuoteSell prices selling tokensIn back to the curve.
func QuoteSell(s *State, tokensIn *Amount) (SellQuote, error) {
	var q SellQuote
	if tokensIn.IsZero() || tokensIn.Gt(&MaxSupply) {
		return q, ErrorInvalidAmount
	}

	q.NewTokenBalance = add(&s.TokenBalance, tokensIn)
	if q.NewTokenBalance.Gt(&MaxSupply) {
		return q, ErrorInvalidAmount
	}

	curve := s.CurveCurrency()
	newCurve := MulDiv(&s.TokenBalance, &curve, &q.NewTokenBalance)

	// curve - newCurve - guard must stay non-negative
	released := sub(&curve, &newCurve)
	if released.Lt(&SellRoundingGuard) {
		return q, ErrorInsufficientReserve
	}
	q.GrossCurveOut = sub(&released, &SellRoundingGuard)

	q.Fee = SplitFee(&q.GrossCurveOut)
	q.CurrencyOut = sub(&q.GrossCurveOut, &q.Fee.Gross)

	if s.CurrencyBalance.Lt(&q.CurrencyOut) {
		return q, ErrorInsufficientReserve
	}
	// the sell debits currency_out + gross_fee, which equals gross_curve_out
	if s.CurrencyBalance.Lt(&q.GrossCurveOut) {
		return q, ErrorInsufficientReserve
	}
	return q, nil
}
