package writer

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"pricecheck/money"
)

// WriteCSV serializes the results to path, overwriting any previous file.
// Columns are a row index, "Holding" and "GBP Price", one row per holding
// in input order. An absent price becomes an empty cell rather than zero.
func WriteCSV(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating output file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"", colHolding, colPrice}); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	for i, row := range rows {
		price := ""
		if row.Price != nil {
			price = row.Price.CSV()
		}
		if err := w.Write([]string{strconv.Itoa(i), row.Symbol, price}); err != nil {
			return errors.Wrapf(err, "writing %s", path)
		}
	}
	w.Flush()
	return errors.Wrapf(w.Error(), "flushing %s", path)
}

// ReadCSV loads a file written by WriteCSV back into result rows,
// order preserved. Empty price cells come back as absent.
func ReadCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening prices file")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "reading header of %s", path)
	}
	if len(header) != 3 || header[1] != colHolding || header[2] != colPrice {
		return nil, errors.Errorf("unexpected prices header %v", header)
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}
		row := Row{Symbol: record[1]}
		if record[2] != "" {
			amount, err := decimal.NewFromString(record[2])
			if err != nil {
				return nil, errors.Wrapf(err, "parsing price of %s", record[1])
			}
			price := money.FromDecimal(amount)
			row.Price = &price
		}
		rows = append(rows, row)
	}
	return rows, nil
}
