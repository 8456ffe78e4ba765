package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Create a starter annotated script",
	Long: `Create a starter annotated script in the current directory. The script
begins with the block comment that parcel reads metadata and readme text
from; everything after the comment is the library body. If [name] is
omitted the script is called starter.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// runInit writes <name>.script into the current directory, refusing to
// overwrite an existing file. The name is taken from the argument (with any
// extension stripped) and falls back to "starter".
func runInit(cmd *cobra.Command, args []string) error {
	name := "starter"
	if len(args) == 1 {
		arg := strings.TrimSpace(args[0])
		arg = strings.TrimSuffix(arg, filepath.Ext(arg))
		if arg != "" && arg != "." {
			name = arg
		}
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid script name %q", name)
	}

	path := name + ".script"
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.WriteFile(path, []byte(starterScript(name)), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if _, err := fmt.Fprintf(os.Stdout, "created %s\n", path); err != nil {
		return err
	}
	return nil
}

// starterScript returns the annotated placeholder script. The leading block
// comment holds TOML metadata, then a "---" separator, then readme text.
func starterScript(name string) string {
	return fmt.Sprintf(`/*
name = "%s"
version = "0.1.0"
summary = "A short one-line summary"
---
# %s

Longer readme text goes here. It becomes the package description.

Home: https://example.com/%s
*/

# library code starts here
`, name, name, name)
}
