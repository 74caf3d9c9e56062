package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	domain "github.com/karimhaddad/estate-scout/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printListingsTable(listings []domain.NormalizedListing) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("PRICE\tDESCRIPTION\tURL\n")
	for i := range listings {
		price := "-"
		if listings[i].Price != nil {
			price = fmt.Sprintf("AED %.0f", *listings[i].Price)
		}
		tw.writef("%s\t%s\t%s\n",
			price,
			truncate(listings[i].Description, 60),
			listings[i].URL,
		)
	}
	return tw.finish()
}

func printPropertiesTable(properties []domain.CatalogProperty) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tTITLE\tLOCATION\tAVAILABILITY\tPRICE\n")
	for i := range properties {
		p := &properties[i]
		tw.writef("%s\t%s\t%s\t%s\t%s %.0f\n",
			p.ID,
			truncate(p.Title, 40),
			p.Location,
			p.Availability,
			p.Currency,
			p.Price,
		)
	}
	return tw.finish()
}

func printArticlesTable(articles []domain.Article) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("URL\tDESCRIPTION\n")
	for i := range articles {
		tw.writef("%s\t%s\n",
			articles[i].URL,
			truncate(articles[i].Description, 80),
		)
	}
	return tw.finish()
}

func printTrendDetail(td *domain.TrendData) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("City:\t%s\n", td.City)
	tw.writef("Current Price:\t%s (as of %s)\n", td.CurrentPrice, td.CurrentPriceDate)
	for i := range td.Historical {
		tw.writef("%s:\t%s\n", td.Historical[i].Period, td.Historical[i].PricePerSqft)
	}
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
