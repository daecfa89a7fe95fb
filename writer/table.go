package writer

import (
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uilive"
	"github.com/mattn/go-colorable"
	"github.com/olekukonko/tablewriter"

	"pricecheck/money"
)

const (
	colIndex   = "#"
	colHolding = "Holding"
	colPrice   = "GBP Price"
)

// Row is one holding's result: the symbol and its normalized price, or
// nil when the lookup failed.
type Row struct {
	Symbol string
	Price  *money.Price
}

var faint = color.New(color.Faint).SprintFunc()

type tableWriter struct {
	*uilive.Writer
}

// NewTable sets up the live ascii results table. Rendering the full table
// after every holding lets the operator watch results accumulate in place.
func NewTable() *tableWriter {
	tw := &tableWriter{Writer: uilive.New()}
	tw.Writer.Out = colorable.NewColorableStdout() // For Windows
	return tw
}

func (tw *tableWriter) Render(rows []Row) {
	table := tablewriter.NewWriter(tw.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{
		color.YellowString(colIndex),
		color.YellowString(colHolding),
		color.YellowString(colPrice),
	})
	table.SetRowLine(true)
	table.SetCenterSeparator(faint("-"))
	table.SetColumnSeparator(faint("|"))
	table.SetRowSeparator(faint("-"))

	// Fill in data
	for i, row := range rows {
		price := faint("-")
		if row.Price != nil {
			price = row.Price.String()
		}
		table.Append([]string{strconv.Itoa(i), row.Symbol, price})
	}

	table.Render()
	tw.Flush()
}
