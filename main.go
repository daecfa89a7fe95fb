package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"pricecheck/browser"
	"pricecheck/config"
	"pricecheck/holdings"
	"pricecheck/money"
	"pricecheck/site"
	"pricecheck/writer"
)

func main() {
	cfg := config.Parse()
	if cfg.ListSites {
		config.ListSitesAndExit(site.Names())
	}
	if err := run(context.Background(), cfg); err != nil {
		logrus.Fatal(err)
	}
}

// pageSession is the slice of browser.Session the holdings loop uses,
// pulled out so the loop can run against a canned session in tests.
type pageSession interface {
	Navigate(url string) error
	site.Page
}

// run holds the browser teardown on a defer so it happens exactly once,
// whether the loop finishes or aborts on a fatal error.
func run(ctx context.Context, cfg *config.Config) error {
	list, err := holdings.Read(cfg.HoldingsFile)
	if err != nil {
		return err
	}
	logrus.Infof("Read %d holdings from %s", len(list), cfg.HoldingsFile)

	session, err := browser.NewSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer session.Close()

	table := writer.NewTable()
	rows, err := collect(ctx, session, list, table.Render)
	if err != nil {
		return err
	}

	if err := writer.WriteCSV(cfg.OutputFile, rows); err != nil {
		return err
	}
	logrus.Infof("Saved %d rows to %s", len(rows), cfg.OutputFile)
	return nil
}

// collect walks the holdings in file order through the one shared browser
// session. A holding whose page is missing its price element only loses
// its own row; an unsupported site or currency aborts the whole run.
func collect(ctx context.Context, session pageSession, list []holdings.Holding, render func([]writer.Row)) ([]writer.Row, error) {
	rows := make([]writer.Row, 0, len(list))
	for _, h := range list {
		logrus.Infof("Looking up %s", h.Symbol)

		parser, err := site.ForURL(h.URL)
		if err != nil {
			return nil, err
		}
		price, err := lookup(ctx, session, parser, h.URL)
		switch {
		case errors.Is(err, site.ErrPriceNotFound):
			logrus.WithError(err).Warnf("No price for %s", h.Symbol)
			rows = append(rows, writer.Row{Symbol: h.Symbol})
		case err != nil:
			return nil, errors.Wrap(err, h.Symbol)
		default:
			rows = append(rows, writer.Row{Symbol: h.Symbol, Price: &price})
		}
		render(rows)
	}
	return rows, nil
}

func lookup(ctx context.Context, session pageSession, parser site.Parser, url string) (money.Price, error) {
	if err := session.Navigate(url); err != nil {
		// A page that will not load is no different from a page
		// missing its price element, skip the holding
		return money.Price{}, errors.Wrapf(site.ErrPriceNotFound, "%v", err)
	}
	return parser.Price(ctx, session)
}
