package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"parcel/internal/diag"
)

var (
	infoColor    = color.New(color.FgCyan)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// printDiagnostics renders the bag to out, one line per diagnostic. Notices
// (SevInfo) are dropped when quiet is set; warnings and errors always print.
func printDiagnostics(out io.Writer, bag *diag.Bag, useColor, quiet bool) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	bag.Sort()
	for _, d := range bag.Items() {
		if quiet && d.Severity == diag.SevInfo {
			continue
		}
		label := d.Severity.String()
		if useColor {
			label = severityColor(d.Severity).Sprint(label)
		}
		fmt.Fprintf(out, "%s [%s] %s\n", label, d.Code.ID(), d.Message)
	}
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevWarning:
		return warningColor
	case diag.SevError:
		return errorColor
	default:
		return infoColor
	}
}

// useColorForStream resolves the persistent --color flag against the stream.
func useColorForStream(cmd *cobra.Command, f *os.File) bool {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		colorFlag = "auto"
	}
	switch colorFlag {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}
