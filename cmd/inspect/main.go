// Command inspect prints a summary table for the histogram documents
// an earlier fill run wrote.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/mariajose2398/SIDM/internal/adapters/export"
)

func main() {
	dir := flag.String("dir", "out", "Directory holding the run's histogram documents")
	name := flag.String("name", "", "Print one histogram's full document instead of the summary table")
	flag.Parse()

	if *name != "" {
		doc, err := export.ReadDocument(filepath.Join(*dir, *name+".json"))
		if err != nil {
			fail(err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			fail(err)
		}
		return
	}

	data, err := os.ReadFile(filepath.Join(*dir, "manifest.json"))
	if err != nil {
		fail(err)
	}
	var manifest export.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		fail(err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "HISTOGRAM\tAXES\tENTRIES\tSUMW\tMEAN")
	for _, entry := range manifest.Histograms {
		doc, err := export.ReadDocument(filepath.Join(*dir, entry.File))
		if err != nil {
			fail(err)
		}
		mean := "-"
		if doc.Summary != nil {
			mean = fmt.Sprintf("%.3f", doc.Summary.Mean)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%.3f\t%s\n", doc.Name, len(doc.Axes), doc.Entries, doc.Total, mean)
	}
	fmt.Fprintf(w, "TOTAL\t\t%d\t\t\n", manifest.TotalEntries)
	if err := w.Flush(); err != nil {
		fail(err)
	}
}

func fail(err error) {
	os.Stderr.WriteString(err.Error() + "\n")
	os.Exit(1)
}
