package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/longevity-genie/cell2sentence4longevity-mcp/apimodels"
)

var csvHeader = []string{"gene_knocked_out", "age_prediction", "age_prediction_with_knockout", "delta_age"}

// formatAge renders an age value for text/CSV output. Integral values keep
// one decimal place ("46.0"), everything else uses the shortest exact form.
// A nil value renders as an empty string.
func formatAge(v *float64) string {
	if v == nil {
		return ""
	}
	if *v == math.Trunc(*v) {
		return strconv.FormatFloat(*v, 'f', 1, 64)
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func render(w io.Writer, format string, result apimodels.KnockoutResult) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "csv":
		cw := csv.NewWriter(w)
		if err := cw.Write(csvHeader); err != nil {
			return err
		}
		row := []string{
			result.GeneKnockedOut,
			formatAge(result.AgePrediction),
			formatAge(result.AgePredictionWithKnockout),
			formatAge(result.DeltaAge),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	case "text":
		fmt.Fprintf(w, "Gene knocked out: %s\n", result.GeneKnockedOut)
		fmt.Fprintf(w, "Age prediction (original): %s\n", formatAge(result.AgePrediction))
		fmt.Fprintf(w, "Age prediction (knockout): %s\n", formatAge(result.AgePredictionWithKnockout))
		fmt.Fprintf(w, "Delta age: %s\n", formatAge(result.DeltaAge))
		return nil
	default:
		return fmt.Errorf("unknown output format %q (expected text, csv, or json)", format)
	}
}
