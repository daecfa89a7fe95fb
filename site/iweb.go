package site

import (
	"context"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"pricecheck/money"
)

// The price figure sits in whatever element follows the "Price" label,
// so the XPath anchors on the label and takes its next sibling.
const iwebPriceXPath = `//p[contains(@class, 'description__label')` +
	` and contains(text(), 'Price')]/following-sibling::*[1]`

// iwebParser scrapes the iWeb share dealing quote page, which always
// displays prices in pence.
type iwebParser struct{}

func (p *iwebParser) Name() string {
	return "iWeb"
}

func (p *iwebParser) Match(u *url.URL) bool {
	host := strings.ToLower(u.Hostname())
	return host == "iweb-sharedealing.co.uk" || strings.HasSuffix(host, ".iweb-sharedealing.co.uk")
}

func (p *iwebParser) Price(ctx context.Context, page Page) (money.Price, error) {
	text, err := page.Text(ctx, iwebPriceXPath)
	if err != nil {
		return money.Price{}, errors.Wrapf(ErrPriceNotFound, "price value: %v", err)
	}
	return money.New(scrubNumber(text), money.GBX)
}

func init() {
	Register(&iwebParser{})
}
