package site

import (
	"context"
	"testing"

	"github.com/pkg/errors"

	"pricecheck/money"
)

// fakePage serves canned element text keyed by XPath expression.
type fakePage struct {
	elements map[string]string
}

func (f *fakePage) Text(_ context.Context, xpath string) (string, error) {
	if text, ok := f.elements[xpath]; ok {
		return text, nil
	}
	return "", errors.New("no node found for selector")
}

func TestForURL(t *testing.T) {

	t.Run("LSE URL picks the LSE parser", func(t *testing.T) {
		p, err := ForURL("https://www.londonstockexchange.com/stock/VWRL/vanguard")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if p.Name() != "LSE" {
			t.Fatalf("Expected LSE parser, got %s", p.Name())
		}
	})

	t.Run("iWeb URL picks the iWeb parser", func(t *testing.T) {
		p, err := ForURL("https://www.markets.iweb-sharedealing.co.uk/funds-centre/fund/1")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if p.Name() != "iWeb" {
			t.Fatalf("Expected iWeb parser, got %s", p.Name())
		}
	})

	t.Run("unknown host is unsupported", func(t *testing.T) {
		_, err := ForURL("https://www.xyz-exchange.com/stock/VWRL")
		if !errors.Is(err, ErrUnsupportedSite) {
			t.Fatalf("Expected ErrUnsupportedSite, got %v", err)
		}
	})

	t.Run("lookalike host does not match", func(t *testing.T) {
		_, err := ForURL("https://fake-londonstockexchange.com/stock/VWRL")
		if !errors.Is(err, ErrUnsupportedSite) {
			t.Fatalf("Expected ErrUnsupportedSite, got %v", err)
		}
	})
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 2 || names[0] != "LSE" || names[1] != "iWeb" {
		t.Fatalf("Unexpected registered sites: %v", names)
	}
}

func TestLSEParser(t *testing.T) {
	parser := &lseParser{}

	t.Run("GBX quote converts to pounds", func(t *testing.T) {
		page := &fakePage{elements: map[string]string{
			lseCurrencyLabelXPath: "Currency (GBX)",
			lsePriceTagXPath:      "7,453.00",
		}}
		p, err := parser.Price(context.Background(), page)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if p.CSV() != "74.53" {
			t.Fatalf("Expected 74.53, got %s", p.CSV())
		}
	})

	t.Run("GBP quote is unchanged", func(t *testing.T) {
		page := &fakePage{elements: map[string]string{
			lseCurrencyLabelXPath: "Currency (GBP)",
			lsePriceTagXPath:      "104.23",
		}}
		p, err := parser.Price(context.Background(), page)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if p.CSV() != "104.23" {
			t.Fatalf("Expected 104.23, got %s", p.CSV())
		}
	})

	t.Run("long figures truncate to 8 characters", func(t *testing.T) {
		page := &fakePage{elements: map[string]string{
			lseCurrencyLabelXPath: "Currency (GBP)",
			lsePriceTagXPath:      "1,234,567.8912",
		}}
		p, err := parser.Price(context.Background(), page)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		// scrubNumber keeps 8 chars, leaving a bare trailing point
		// that parses as a whole number
		if p.CSV() != "1234567" {
			t.Fatalf("Expected 1234567, got %s", p.CSV())
		}
	})

	t.Run("missing currency label is recoverable", func(t *testing.T) {
		page := &fakePage{elements: map[string]string{
			lsePriceTagXPath: "104.23",
		}}
		_, err := parser.Price(context.Background(), page)
		if !errors.Is(err, ErrPriceNotFound) {
			t.Fatalf("Expected ErrPriceNotFound, got %v", err)
		}
	})

	t.Run("missing price tag is recoverable", func(t *testing.T) {
		page := &fakePage{elements: map[string]string{
			lseCurrencyLabelXPath: "Currency (GBX)",
		}}
		_, err := parser.Price(context.Background(), page)
		if !errors.Is(err, ErrPriceNotFound) {
			t.Fatalf("Expected ErrPriceNotFound, got %v", err)
		}
	})

	t.Run("unknown currency tag is fatal, not absent", func(t *testing.T) {
		page := &fakePage{elements: map[string]string{
			lseCurrencyLabelXPath: "Currency (USD)",
			lsePriceTagXPath:      "104.23",
		}}
		_, err := parser.Price(context.Background(), page)
		if !errors.Is(err, money.ErrUnsupportedCurrency) {
			t.Fatalf("Expected ErrUnsupportedCurrency, got %v", err)
		}
		if errors.Is(err, ErrPriceNotFound) {
			t.Fatal("Unknown currency must not be downgraded to a missing price")
		}
	})
}

func TestIwebParser(t *testing.T) {
	parser := &iwebParser{}

	t.Run("quote is always pence", func(t *testing.T) {
		page := &fakePage{elements: map[string]string{
			iwebPriceXPath: "12,345.00",
		}}
		p, err := parser.Price(context.Background(), page)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if p.CSV() != "123.45" {
			t.Fatalf("Expected 123.45, got %s", p.CSV())
		}
	})

	t.Run("missing price element is recoverable", func(t *testing.T) {
		page := &fakePage{elements: map[string]string{}}
		_, err := parser.Price(context.Background(), page)
		if !errors.Is(err, ErrPriceNotFound) {
			t.Fatalf("Expected ErrPriceNotFound, got %v", err)
		}
	})
}

func TestScrubNumber(t *testing.T) {
	cases := []struct{ in, want string }{
		{"7,453.00", "7453.00"},
		{"104.23", "104.23"},
		{"1,234,567.89", "1234567."},
		{"12", "12"},
	}
	for _, c := range cases {
		if got := scrubNumber(c.in); got != c.want {
			t.Errorf("scrubNumber(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
