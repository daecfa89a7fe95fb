package money

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Currency is the denomination a scraped price is quoted in.
type Currency string

const (
	// GBP is pounds sterling, the output unit.
	GBP Currency = "GBP"
	// GBX is pence sterling, 1/100 of a pound.
	GBX Currency = "GBX"
)

// ErrUnsupportedCurrency aborts the run - an unknown tag on a quote page
// means the page markup changed and the parser needs updating.
var ErrUnsupportedCurrency = errors.New("currency not supported")

// Price is a unit price of a holding, always held in GBP. Conversion from
// the source denomination happens on construction, so a Price can never
// carry a pence value by mistake. Absence of a price is *Price == nil.
type Price struct {
	amount decimal.Decimal
}

// New parses raw as a decimal number quoted in the given currency and
// normalizes it to GBP. raw is expected to be already scrubbed of
// thousands separators.
func New(raw string, currency Currency) (Price, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return Price{}, errors.Wrapf(err, "parsing price text %q", raw)
	}
	switch currency {
	case GBP:
	case GBX:
		amount = amount.Shift(-2)
	default:
		return Price{}, errors.Wrapf(ErrUnsupportedCurrency, "currency %q", currency)
	}
	return Price{amount: amount}, nil
}

// FromDecimal wraps an amount already denominated in GBP.
func FromDecimal(amount decimal.Decimal) Price {
	return Price{amount: amount}
}

// Amount returns the exact GBP value.
func (p Price) Amount() decimal.Decimal {
	return p.amount
}

// Equal reports whether two prices hold the same GBP value.
func (p Price) Equal(other Price) bool {
	return p.amount.Equal(other.amount)
}

// String renders the price for the console, £-prefixed to 4 significant
// figures (pennies rarely matter at a glance).
func (p Price) String() string {
	f, _ := p.amount.Float64()
	return "£" + strconv.FormatFloat(f, 'g', 4, 64)
}

// CSV returns the exact decimal text written to the output file.
func (p Price) CSV() string {
	return p.amount.String()
}
