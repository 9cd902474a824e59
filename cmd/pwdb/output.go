package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/ericfisherdev/pwdb/internal/domain/model"
)

const secretMask = "*****"

// cellReplacer keeps tabs and line breaks in field values from splitting table cells.
var cellReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\t", " ")

func printSuccess(w io.Writer, format string, args ...any) {
	color.New(color.FgGreen).Fprintf(w, format+"\n", args...)
}

// printRecords renders rows as an aligned table keyed by store index.
func printRecords(w io.Writer, rows []model.Match, showSecrets bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tUSERNAME\tSECRET\tURL\tNOTES")
	for _, row := range rows {
		secret := secretMask
		if showSecrets {
			secret = row.Record.Secret
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			row.Index,
			cellReplacer.Replace(row.Record.Username),
			cellReplacer.Replace(secret),
			cellReplacer.Replace(row.Record.URL),
			cellReplacer.Replace(row.Record.Notes),
		)
	}
	return tw.Flush()
}

// printRecord renders a single record, secret included.
func printRecord(w io.Writer, index int, r model.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Index:\t%d\n", index)
	fmt.Fprintf(tw, "Username:\t%s\n", cellReplacer.Replace(r.Username))
	fmt.Fprintf(tw, "Secret:\t%s\n", cellReplacer.Replace(r.Secret))
	fmt.Fprintf(tw, "URL:\t%s\n", cellReplacer.Replace(r.URL))
	fmt.Fprintf(tw, "Notes:\t%s\n", cellReplacer.Replace(r.Notes))
	return tw.Flush()
}

// indexed pairs records with their positions.
func indexed(records []model.Record) []model.Match {
	rows := make([]model.Match, len(records))
	for i, r := range records {
		rows[i] = model.Match{Index: i, Record: r}
	}
	return rows
}
