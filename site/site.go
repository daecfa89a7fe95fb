package site

import (
	"context"
	"net/url"
	"sort"

	"github.com/pkg/errors"

	"pricecheck/money"
)

// ErrPriceNotFound is the recoverable tier: the expected page element was
// missing or the lookup timed out. The caller records an absent price and
// moves on to the next holding.
var ErrPriceNotFound = errors.New("price not found on page")

// ErrUnsupportedSite aborts the run - there is no parser for the page and
// guessing a strategy would scrape garbage.
var ErrUnsupportedSite = errors.New("site not supported")

// Page is a loaded quote page. Text returns the text content of the first
// element matching the XPath expression, waiting up to the session's
// element timeout for it to appear.
type Page interface {
	Text(ctx context.Context, xpath string) (string, error)
}

// Parser extracts the displayed price from one supported site's markup.
// Each site lays its quote page out differently, so breakage from a site
// redesign stays inside that site's parser.
type Parser interface {
	Name() string
	// Match reports whether this parser serves the page at u,
	// decided on hostname.
	Match(u *url.URL) bool
	// Price locates and parses the displayed price, normalized to GBP.
	// Returns ErrPriceNotFound when the expected elements are missing.
	Price(ctx context.Context, page Page) (money.Price, error)
}

var parsers []Parser

func Register(p Parser) {
	parsers = append(parsers, p)
}

// Names lists the registered sites.
func Names() []string {
	names := make([]string, 0, len(parsers))
	for _, p := range parsers {
		names = append(names, p.Name())
	}
	sort.Strings(names)
	return names
}

// ForURL picks the parser for a holding's quote page by hostname.
func ForURL(raw string) (Parser, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing holding URL %q", raw)
	}
	for _, p := range parsers {
		if p.Match(u) {
			return p, nil
		}
	}
	return nil, errors.Wrapf(ErrUnsupportedSite, "no parser for %q", u.Host)
}

// scrubNumber strips thousands separators and truncates to 8 characters,
// which is enough for any quoted price and drops trailing junk some pages
// append to the figure.
func scrubNumber(text string) string {
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		if text[i] == ',' {
			continue
		}
		out = append(out, text[i])
	}
	if len(out) > 8 {
		out = out[:8]
	}
	return string(out)
}
