package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"parcel/internal/chunker"
	"parcel/internal/manifest"
)

// DescriptorFile is the name of the serialized descriptor inside the
// staged package directory.
const DescriptorFile = "parcel.toml"

// stagePackage writes the package layout under tmpDir:
//
//	<name>/parcel.toml        serialized descriptor
//	<name>/lib/<name><ext>    library region, verbatim
//	<name>/bin/<name>         executable body, when present
//
// It fixes the descriptor's Files list to the single staged library file
// before serializing, and returns the package directory.
func stagePackage(tmpDir string, desc *manifest.Descriptor, chunks chunker.Chunks, srcExt string) (string, error) {
	pkgDir := filepath.Join(tmpDir, desc.Name)
	libRel := filepath.Join("lib", desc.Name+srcExt)

	if err := os.MkdirAll(filepath.Join(pkgDir, "lib"), 0o750); err != nil {
		return "", fmt.Errorf("failed to create staging layout: %w", err)
	}

	if err := os.WriteFile(filepath.Join(pkgDir, libRel), []byte(chunks.Library), 0o600); err != nil {
		return "", fmt.Errorf("failed to write library file: %w", err)
	}

	if desc.Executable != "" {
		binRel := filepath.Join("bin", desc.Name)
		if err := os.MkdirAll(filepath.Join(pkgDir, "bin"), 0o750); err != nil {
			return "", fmt.Errorf("failed to create bin dir: %w", err)
		}
		// #nosec G306 -- the staged executable must be runnable
		if err := os.WriteFile(filepath.Join(pkgDir, binRel), []byte(desc.Executable), 0o700); err != nil {
			return "", fmt.Errorf("failed to write executable: %w", err)
		}
	}

	desc.Files = []string{filepath.ToSlash(libRel)}

	descPath := filepath.Join(pkgDir, DescriptorFile)
	f, err := os.Create(descPath) // #nosec G304 -- path built from staging dir
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", DescriptorFile, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(desc); err != nil {
		return "", fmt.Errorf("failed to serialize descriptor: %w", err)
	}
	return pkgDir, nil
}

// stagedLibraryPath returns the absolute path of the staged library file.
func stagedLibraryPath(pkgDir string, desc *manifest.Descriptor) string {
	if len(desc.Files) == 0 {
		return ""
	}
	return filepath.Join(pkgDir, filepath.FromSlash(desc.Files[0]))
}
