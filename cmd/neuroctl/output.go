package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
)

func printResult(v interface{}) {
	if output == "json" {
		json.NewEncoder(os.Stdout).Encode(v)
		return
	}
	printTable(os.Stdout, v)
}

func printTable(out io.Writer, v interface{}) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	switch data := v.(type) {
	case RootRow:
		fmt.Fprintf(w, "Message:\t%s\n", data.Message)
		fmt.Fprintf(w, "Status:\t%s\n", data.Status)
		fmt.Fprintf(w, "Version:\t%s\n", data.Version)
		fmt.Fprintf(w, "Timestamp:\t%s\n", data.Timestamp)
	case HealthRow:
		fmt.Fprintln(w, "STATUS\tDATABASE\tTIMESTAMP")
		fmt.Fprintf(w, "%s\t%s\t%s\n", data.Status, data.Database, data.Timestamp)
	default:
		json.NewEncoder(out).Encode(v)
	}
	w.Flush()
}
