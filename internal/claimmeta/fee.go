package claimmeta

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/chainclaims/hub/internal/huberr"
)

// Fee currencies, matching FeeMessage.Currency in the original.
const (
	CurrencyLBC = "LBC"
	CurrencyBTC = "BTC"
	CurrencyUSD = "USD"
)

const cent = 1000000

// coin is CENT * 100, the LBC/BTC base-unit scale (dewies/satoshis per
// whole coin), matching attrs.py's COIN constant.
var coin = decimal.New(100*cent, 0)

// pennies is the USD cents-per-dollar scale.
var pennies = decimal.New(100, 0)

// Fee is a claim's payment request: an address plus an amount denominated
// in one of three currencies, the Go analogue of Fee in attrs.py.
type Fee struct {
	Currency    string
	AddressRaw  []byte
	AmountUnits int64 // dewies, satoshis, or pennies, depending on Currency
}

// Update sets amount/currency and, if given, the fee address. Matches the
// original's validation order: an amount requires a currency (explicit or
// already set); a currency without an amount is rejected; an address
// requires a currency already being set.
func (f *Fee) Update(address, currency string, amount *decimal.Decimal) error {
	if amount != nil {
		cur := strings.ToLower(currency)
		if cur == "" {
			cur = strings.ToLower(f.Currency)
		}
		if cur == "" {
			return huberr.Invalid("fee: amount given without a currency")
		}
		switch cur {
		case "lbc":
			f.SetLBC(*amount)
		case "btc":
			f.SetBTC(*amount)
		case "usd":
			f.SetUSD(*amount)
		default:
			return huberr.Invalid("fee: unknown currency %q", currency)
		}
	} else if currency != "" {
		return huberr.Invalid("fee: currency given without an amount")
	}

	if address != "" {
		if f.Currency == "" {
			return huberr.Invalid("fee: address given without an amount and currency")
		}
		f.AddressRaw = []byte(address)
	}
	return nil
}

// LBC returns the fee amount in whole LBC; it panics if Currency isn't LBC,
// matching the original's raise-on-wrong-currency accessors (a programmer
// error to call the wrong unit accessor, not a validation failure).
func (f Fee) LBC() decimal.Decimal {
	f.mustCurrency(CurrencyLBC)
	return decimal.New(f.AmountUnits, 0).Div(coin)
}

func (f *Fee) SetLBC(amount decimal.Decimal) {
	f.AmountUnits = amount.Mul(coin).IntPart()
	f.Currency = CurrencyLBC
}

func (f Fee) BTC() decimal.Decimal {
	f.mustCurrency(CurrencyBTC)
	return decimal.New(f.AmountUnits, 0).Div(coin)
}

func (f *Fee) SetBTC(amount decimal.Decimal) {
	f.AmountUnits = amount.Mul(coin).IntPart()
	f.Currency = CurrencyBTC
}

// USD returns the fee amount in whole dollars.
func (f Fee) USD() decimal.Decimal {
	f.mustCurrency(CurrencyUSD)
	return decimal.New(f.AmountUnits, 0).Div(pennies)
}

// SetUSD rounds amount UP to the nearest cent before storing it in
// pennies, matching the original's `quantize(PENNY, ROUND_UP)` — a USD fee
// is never under-collected by truncation.
func (f *Fee) SetUSD(amount decimal.Decimal) {
	f.AmountUnits = amount.Mul(pennies).Ceil().IntPart()
	f.Currency = CurrencyUSD
}

// Amount returns the fee amount in its native currency's whole units.
func (f Fee) Amount() decimal.Decimal {
	switch f.Currency {
	case CurrencyLBC:
		return f.LBC()
	case CurrencyBTC:
		return f.BTC()
	case CurrencyUSD:
		return f.USD()
	default:
		return decimal.Zero
	}
}

func (f Fee) mustCurrency(want string) {
	if f.Currency != want {
		panic(want + " can only be returned for " + want + " fees")
	}
}
