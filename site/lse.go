package site

import (
	"context"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"pricecheck/money"
)

const (
	lseCurrencyLabelXPath = `//div[contains(@class, "currency-label")]`
	lsePriceTagXPath      = `//span[@class="price-tag"]`
)

// lseParser scrapes the London Stock Exchange quote page. LSE quotes
// equities in GBX and funds in GBP, so the currency tag is read off the
// page rather than assumed.
type lseParser struct{}

func (p *lseParser) Name() string {
	return "LSE"
}

func (p *lseParser) Match(u *url.URL) bool {
	host := strings.ToLower(u.Hostname())
	return host == "londonstockexchange.com" || strings.HasSuffix(host, ".londonstockexchange.com")
}

func (p *lseParser) Price(ctx context.Context, page Page) (money.Price, error) {
	label, err := page.Text(ctx, lseCurrencyLabelXPath)
	if err != nil {
		return money.Price{}, errors.Wrapf(ErrPriceNotFound, "currency label: %v", err)
	}
	// The label ends with the tag in parentheses, eg "Currency (GBX)"
	if len(label) > 5 {
		label = label[len(label)-5:]
	}
	currency := money.Currency(strings.Trim(label, "()"))

	text, err := page.Text(ctx, lsePriceTagXPath)
	if err != nil {
		return money.Price{}, errors.Wrapf(ErrPriceNotFound, "price tag: %v", err)
	}
	return money.New(scrubNumber(text), currency)
}

func init() {
	Register(&lseParser{})
}
