package pipeline

import (
	"fmt"

	"parcel/internal/chunker"
	"parcel/internal/diag"
	"parcel/internal/identity"
	"parcel/internal/manifest"
	"parcel/internal/source"
)

// InspectRequest configures a chunk-and-resolve run without staging or
// external tools.
type InspectRequest struct {
	Path           string
	Name           string
	Defaults       manifest.Defaults
	Identity       identity.Lookup
	MaxDiagnostics int
}

// InspectResult carries the regions and the resolved descriptor. Descriptor
// is nil when resolution failed; Chunks and Bag are still populated.
type InspectResult struct {
	Chunks     chunker.Chunks
	Descriptor *manifest.Descriptor
	Bag        *diag.Bag
}

// Inspect chunks the script and resolves its descriptor, surfacing
// inference notices through the returned bag.
func Inspect(req *InspectRequest) (InspectResult, error) {
	maxDiag := req.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = defaultMaxDiagnostics
	}
	bag := diag.NewBag(maxDiag)

	fs := source.NewFileSet()
	id, err := fs.Load(req.Path)
	if err != nil {
		return InspectResult{Bag: bag}, fmt.Errorf("failed to read %s: %w", req.Path, err)
	}

	chunks := chunker.Chunk(fs.Get(id), diag.BagReporter{Bag: bag})
	res := InspectResult{Chunks: chunks, Bag: bag}

	raw, err := manifest.ParseRaw(chunks.Metadata)
	if err != nil {
		return res, err
	}

	defaults := manifest.Defaults{}
	for k, v := range req.Defaults {
		defaults[k] = v
	}
	if _, ok := defaults[manifest.FieldName]; !ok {
		name := req.Name
		if name == "" {
			name = stemOf(req.Path)
		}
		defaults[manifest.FieldName] = name
	}

	ident := req.Identity
	if ident == nil {
		ident = identity.Git{}
	}

	desc, err := manifest.Resolve(raw, defaults, chunks.Readme, ident, diag.BagReporter{Bag: bag})
	if err != nil {
		return res, err
	}
	res.Descriptor = desc
	return res, nil
}
