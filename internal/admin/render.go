package admin

import (
	"fmt"
	"io"
	"text/tabwriter"

	"roots-catalog/internal/model"

	"github.com/gocarina/gocsv"
)

// WriteTable writes the product list columns shown on the list screen.
func WriteTable(w io.Writer, products []model.Product) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tTYPE\tFLOWER")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Price.StringFixed(2), p.Type, p.Flower)
	}
	return tw.Flush()
}

// WriteCSV writes products as CSV with a header row.
func WriteCSV(w io.Writer, products []model.Product) error {
	if products == nil {
		products = []model.Product{}
	}
	return gocsv.Marshal(&products, w)
}

// WritePagination writes the pagination bar, marking the current page.
func WritePagination(w io.Writer, links []PageLink) error {
	if len(links) == 0 {
		return nil
	}
	for i, link := range links {
		sep := " "
		if i == 0 {
			sep = ""
		}
		label := fmt.Sprint(link.Number)
		if link.Active {
			label = "[" + label + "]"
		}
		if _, err := fmt.Fprint(w, sep+label); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
