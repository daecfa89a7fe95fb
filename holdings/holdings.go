package holdings

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Holding is one tracked investment: a symbol and the quote page to
// scrape its price from.
type Holding struct {
	Symbol string
	URL    string
}

// Read loads the holdings list from a CSV file. The header row must be
// exactly "symbol,url" - anything else aborts the run before a single
// page is loaded. Rows come back in file order, duplicates and all.
func Read(path string) ([]Holding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening holdings file")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "reading header of %s", path)
	}
	if len(header) != 2 || header[0] != "symbol" || header[1] != "url" {
		return nil, errors.Errorf("holdings file must only have columns symbol,url, got %v", header)
	}

	var list []Holding
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}
		list = append(list, Holding{Symbol: row[0], URL: row[1]})
	}
	return list, nil
}
