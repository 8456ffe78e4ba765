package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"parcel/internal/pipeline"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] <script>",
	Short: "Show the resolved descriptor for a script",
	Long:  "Chunk a script and resolve its package descriptor without building anything.",
	Args:  cobra.ExactArgs(1),
	RunE:  inspectExecution,
}

func inspectExecution(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	nameFlag, err := cmd.Flags().GetString("name")
	if err != nil {
		return err
	}
	setValues, err := cmd.Flags().GetStringSlice("set")
	if err != nil {
		return err
	}
	defaults, err := parseDefaults(setValues)
	if err != nil {
		return err
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	useColor := useColorForStream(cmd, os.Stderr)

	res, inspectErr := pipeline.Inspect(&pipeline.InspectRequest{
		Path:           args[0],
		Name:           nameFlag,
		Defaults:       defaults,
		MaxDiagnostics: maxDiagnostics,
	})
	printDiagnostics(os.Stderr, res.Bag, useColor, quiet)
	if inspectErr != nil {
		return inspectErr
	}

	switch format {
	case "pretty":
		return printInspectPretty(res)
	case "toml":
		return toml.NewEncoder(os.Stdout).Encode(res.Descriptor)
	default:
		return fmt.Errorf("invalid --format value %q (expected pretty|toml)", format)
	}
}

func printInspectPretty(res pipeline.InspectResult) error {
	d := res.Descriptor
	rows := []struct {
		label string
		value string
	}{
		{"name", d.Name},
		{"version", d.Version},
		{"author", d.Author},
		{"email", d.Email},
		{"summary", d.Summary},
		{"description", d.Description},
		{"homepage", d.Homepage},
	}
	if d.Executable != "" {
		rows = append(rows, struct{ label, value string }{"executable", d.Executable})
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(os.Stdout, "%-12s %s\n", row.label, row.value); err != nil {
			return err
		}
	}
	readmeLines := len(strings.Split(strings.TrimRight(res.Chunks.Readme, "\n"), "\n"))
	if res.Chunks.Readme == "" {
		readmeLines = 0
	}
	_, err := fmt.Fprintf(os.Stdout, "%-12s %d lines readme, %d bytes library\n",
		"content", readmeLines, len(res.Chunks.Library))
	return err
}

func init() {
	inspectCmd.Flags().String("format", "pretty", "output format (pretty|toml)")
	inspectCmd.Flags().String("name", "", "override the package name")
	inspectCmd.Flags().StringSlice("set", nil, "descriptor field default as field=value (repeatable)")
}
