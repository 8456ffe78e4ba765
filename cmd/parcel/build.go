package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"parcel/internal/manifest"
	"parcel/internal/pipeline"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] <script>...",
	Short: "Package annotated scripts",
	Long:  "Package one or more annotated scripts into distributable .pkg files.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  buildExecution,
}

// uiMode selects between the terminal progress UI and plain line output.
type uiMode uint8

const (
	uiAuto uiMode = iota
	uiOn
	uiOff
)

// parseUIMode reads the --ui flag value. Blank means auto.
func parseUIMode(value string) (uiMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return uiAuto, nil
	case "on":
		return uiOn, nil
	case "off":
		return uiOff, nil
	}
	return uiAuto, fmt.Errorf("--ui must be auto, on, or off; got %q", value)
}

// wantTUI reports whether the progress UI should render. Explicit on/off
// wins; auto follows whether stdout is a terminal.
func (m uiMode) wantTUI() bool {
	switch m {
	case uiOn:
		return true
	case uiOff:
		return false
	}
	return isTerminal(os.Stdout)
}

func buildExecution(cmd *cobra.Command, args []string) error {
	nameFlag, err := cmd.Flags().GetString("name")
	if err != nil {
		return err
	}
	checker, err := cmd.Flags().GetString("checker")
	if err != nil {
		return err
	}
	builder, err := cmd.Flags().GetString("builder")
	if err != nil {
		return err
	}
	skipCheck, err := cmd.Flags().GetBool("skip-check")
	if err != nil {
		return err
	}
	outputDir, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	keepTmp, err := cmd.Flags().GetBool("keep-tmp")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}
	printCommands, err := cmd.Flags().GetBool("print-commands")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	setValues, err := cmd.Flags().GetStringSlice("set")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}

	if nameFlag != "" && len(args) > 1 {
		return fmt.Errorf("--name applies to a single script, got %d", len(args))
	}

	uiModeValue, err := parseUIMode(uiValue)
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
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}
	useColor := useColorForStream(cmd, os.Stderr)

	var cache *pipeline.DiskCache
	if !noCache {
		// A broken cache never blocks a build.
		cache, _ = pipeline.OpenDiskCache("parcel")
	}

	configure := func(path string) *pipeline.Request {
		return &pipeline.Request{
			Path:           path,
			Name:           nameFlag,
			Defaults:       defaults,
			Checker:        checker,
			Builder:        builder,
			SkipCheck:      skipCheck,
			OutputDir:      outputDir,
			KeepTmp:        keepTmp,
			Force:          force,
			PrintCommands:  printCommands,
			Cache:          cache,
			MaxDiagnostics: maxDiagnostics,
		}
	}

	var (
		results  []pipeline.Result
		buildErr error
	)
	if uiModeValue.wantTUI() {
		results, buildErr = runBuildWithUI(cmd.Context(), "parcel build", args, configure)
	} else {
		results, buildErr = pipeline.BuildAll(cmd.Context(), args, configure)
	}

	for _, res := range results {
		printDiagnostics(os.Stderr, res.Bag, useColor, quiet)
		if showTimings {
			printStageTimings(os.Stdout, res.Timings)
		}
		if res.Artifact == "" {
			continue
		}
		if buildErr == nil && !res.CacheHit && !quiet {
			if _, err := fmt.Fprintf(os.Stdout, "packaged %s\n", displayPath(res.Artifact)); err != nil {
				return err
			}
		}
	}
	return buildErr
}

// parseDefaults turns repeated --set field=value flags into resolver defaults.
func parseDefaults(values []string) (manifest.Defaults, error) {
	if len(values) == 0 {
		return nil, nil
	}
	defaults := make(manifest.Defaults, len(values))
	for _, v := range values {
		field, value, ok := strings.Cut(v, "=")
		if !ok || strings.TrimSpace(field) == "" {
			return nil, fmt.Errorf("invalid --set value %q (expected field=value)", v)
		}
		defaults[strings.TrimSpace(field)] = value
	}
	return defaults, nil
}

// displayPath shortens a path to be relative to the working directory when
// that does not escape it.
func displayPath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

func init() {
	buildCmd.Flags().String("name", "", "override the package name (single script only)")
	buildCmd.Flags().String("checker", "", "syntax checker command (default "+pipeline.DefaultChecker+")")
	buildCmd.Flags().String("builder", "", "package builder command (default "+pipeline.DefaultBuilder+")")
	buildCmd.Flags().Bool("skip-check", false, "skip the syntax-check stage")
	buildCmd.Flags().StringP("output", "o", "", "directory for built packages")
	buildCmd.Flags().Bool("keep-tmp", false, "preserve the staging directory")
	buildCmd.Flags().Bool("force", false, "rebuild even when the cache is fresh")
	buildCmd.Flags().Bool("print-commands", false, "print external commands before running them")
	buildCmd.Flags().Bool("no-cache", false, "disable the build cache")
	buildCmd.Flags().StringSlice("set", nil, "descriptor field default as field=value (repeatable)")
	buildCmd.Flags().String("ui", "auto", "user interface (auto|on|off)")
}
