package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"parcel/internal/chunker"
	"parcel/internal/diag"
	"parcel/internal/identity"
	"parcel/internal/manifest"
	"parcel/internal/source"
)

// Default external collaborators. Both are looked up on PATH and can be
// overridden per request.
const (
	DefaultChecker = "parcel-lint"
	DefaultBuilder = "parcel-pack"
)

const defaultMaxDiagnostics = 100

// Request describes one packaging run for a single script file.
type Request struct {
	// Path is the annotated script to package.
	Path string
	// Name overrides the package name default (otherwise the filename stem).
	Name string
	// Defaults are extra caller-supplied field defaults.
	Defaults manifest.Defaults

	// Checker is the external syntax checker; empty means DefaultChecker.
	Checker string
	// Builder is the external package builder; empty means DefaultBuilder.
	Builder string
	// SkipCheck disables the syntax-check stage.
	SkipCheck bool

	// OutputDir receives the built artifact; empty means the working dir.
	OutputDir string
	// KeepTmp leaves the staging directory behind for debugging.
	KeepTmp bool
	// Force rebuilds even when the cache says the artifact is current.
	Force bool
	// PrintCommands echoes external commands before running them.
	PrintCommands bool

	// Identity feeds author/email inference; nil means identity.Git.
	Identity identity.Lookup
	// Progress receives stage events; nil means no progress reporting.
	Progress ProgressSink
	// Cache is the optional build cache; nil disables caching.
	Cache *DiskCache

	MaxDiagnostics int
}

// Result is the outcome of one packaging run.
type Result struct {
	Descriptor *manifest.Descriptor
	Chunks     chunker.Chunks
	// Artifact is the absolute path of the produced package file.
	Artifact string
	Bag      *diag.Bag
	Timings  Timings
	CacheHit bool
}

// Build runs the full pipeline for one script: chunk, resolve, stage,
// check, build. Core failures (malformed metadata, unresolved fields) are
// returned verbatim; external command failures carry the captured stderr.
func Build(ctx context.Context, req *Request) (Result, error) {
	b, err := newRun(req)
	if err != nil {
		return Result{}, err
	}
	res := Result{Bag: b.bag}

	if err := b.stage(StageChunk, func() error {
		return b.chunk()
	}); err != nil {
		return res, err
	}
	res.Chunks = b.chunks

	if err := b.stage(StageResolve, func() error {
		return b.resolve()
	}); err != nil {
		return res, err
	}
	res.Descriptor = b.desc
	res.Timings = b.timings

	artifact := fmt.Sprintf("%s-%s.pkg", b.desc.Name, b.desc.Version)
	outPath, err := filepath.Abs(filepath.Join(b.outputDir(), artifact))
	if err != nil {
		return res, fmt.Errorf("failed to resolve output path: %w", err)
	}
	res.Artifact = outPath

	if !req.Force && b.cacheFresh(artifact, outPath) {
		diag.ReportInfo(diag.BagReporter{Bag: b.bag}, diag.PackCacheHit, source.Span{},
			fmt.Sprintf("%s is up to date, skipping build", artifact))
		res.CacheHit = true
		res.Timings = b.timings
		// The UI marks a script finished on the final stage event.
		b.emit(Event{File: b.req.Path, Stage: StageBuild, Status: StatusDone})
		return res, nil
	}

	tmpDir, err := os.MkdirTemp("", "parcel-*")
	if err != nil {
		return res, fmt.Errorf("failed to create staging dir: %w", err)
	}
	if !req.KeepTmp {
		defer os.RemoveAll(tmpDir)
	}

	var pkgDir string
	if err := b.stage(StageStage, func() error {
		var stageErr error
		pkgDir, stageErr = stagePackage(tmpDir, b.desc, b.chunks, filepath.Ext(req.Path))
		return stageErr
	}); err != nil {
		return res, err
	}

	if !req.SkipCheck {
		if err := b.stage(StageCheck, func() error {
			return b.runCheck(ctx, pkgDir)
		}); err != nil {
			return res, err
		}
	}

	if err := b.stage(StageBuild, func() error {
		return b.runBuild(ctx, pkgDir, artifact, outPath)
	}); err != nil {
		return res, err
	}

	if b.req.Cache != nil {
		// Cache write failures degrade to a rebuild next time.
		_ = b.req.Cache.Store(b.file.Hash, cachePayload{
			Name:     b.desc.Name,
			Version:  b.desc.Version,
			Artifact: artifact,
		})
	}

	res.Timings = b.timings
	return res, nil
}

type run struct {
	req     *Request
	fileSet *source.FileSet
	file    *source.File
	bag     *diag.Bag
	chunks  chunker.Chunks
	desc    *manifest.Descriptor
	timings Timings
}

func newRun(req *Request) (*run, error) {
	if req == nil {
		return nil, errors.New("missing build request")
	}
	maxDiag := req.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = defaultMaxDiagnostics
	}

	fs := source.NewFileSet()
	id, err := fs.Load(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", req.Path, err)
	}
	return &run{
		req:     req,
		fileSet: fs,
		file:    fs.Get(id),
		bag:     diag.NewBag(maxDiag),
	}, nil
}

// stage runs fn with progress events and timing around it. Failures of the
// external-facing stages also land in the bag with their code; resolve
// failures carry typed errors instead and stay out of the catalog here.
func (b *run) stage(st Stage, fn func() error) error {
	b.emit(Event{File: b.req.Path, Stage: st, Status: StatusWorking})
	started := time.Now()
	err := fn()
	elapsed := time.Since(started)
	b.timings.Set(st, elapsed)

	if err != nil {
		if code := failureCode(st); code != diag.UnknownCode {
			diag.ReportError(diag.BagReporter{Bag: b.bag}, code, source.Span{}, err.Error())
		}
		b.emit(Event{File: b.req.Path, Stage: st, Status: StatusError, Err: err, Elapsed: elapsed})
		return err
	}
	b.emit(Event{File: b.req.Path, Stage: st, Status: StatusDone, Elapsed: elapsed})
	return nil
}

func failureCode(st Stage) diag.Code {
	switch st {
	case StageStage:
		return diag.PackStageFailed
	case StageCheck:
		return diag.PackCheckFailed
	case StageBuild:
		return diag.PackBuildFailed
	}
	return diag.UnknownCode
}

func (b *run) emit(evt Event) {
	if b.req.Progress != nil {
		b.req.Progress.OnEvent(evt)
	}
}

func (b *run) chunk() error {
	b.chunks = chunker.Chunk(b.file, diag.BagReporter{Bag: b.bag})
	return nil
}

func (b *run) resolve() error {
	raw, err := manifest.ParseRaw(b.chunks.Metadata)
	if err != nil {
		return err
	}

	defaults := manifest.Defaults{}
	for k, v := range b.req.Defaults {
		defaults[k] = v
	}
	if _, ok := defaults[manifest.FieldName]; !ok {
		defaults[manifest.FieldName] = b.packageName()
	}

	ident := b.req.Identity
	if ident == nil {
		ident = identity.Git{}
	}

	desc, err := manifest.Resolve(raw, defaults, b.chunks.Readme, ident, diag.BagReporter{Bag: b.bag})
	if err != nil {
		return err
	}
	b.desc = desc
	return nil
}

// packageName derives the default package name from the script filename.
func (b *run) packageName() string {
	if b.req.Name != "" {
		return b.req.Name
	}
	return stemOf(b.req.Path)
}

// stemOf returns the filename without directory or extension.
func stemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (b *run) outputDir() string {
	if b.req.OutputDir != "" {
		return b.req.OutputDir
	}
	return "."
}

// cacheFresh reports whether the cache knows this exact source content and
// the recorded artifact still exists at the expected output path.
func (b *run) cacheFresh(artifact, outPath string) bool {
	if b.req.Cache == nil {
		return false
	}
	payload, ok := b.req.Cache.Load(b.file.Hash)
	if !ok || payload.Artifact != artifact {
		return false
	}
	_, err := os.Stat(outPath)
	return err == nil
}

func (b *run) runCheck(ctx context.Context, pkgDir string) error {
	checker := b.req.Checker
	if checker == "" {
		checker = DefaultChecker
	}
	libPath := stagedLibraryPath(pkgDir, b.desc)
	if err := runCommand(ctx, b.req.PrintCommands, pkgDir, checker, libPath); err != nil {
		return fmt.Errorf("syntax check failed: %w", err)
	}
	return nil
}

func (b *run) runBuild(ctx context.Context, pkgDir, artifact, outPath string) error {
	builder := b.req.Builder
	if builder == "" {
		builder = DefaultBuilder
	}
	if err := runCommand(ctx, b.req.PrintCommands, pkgDir, builder, DescriptorFile); err != nil {
		return fmt.Errorf("package build failed: %w", err)
	}

	built := filepath.Join(pkgDir, artifact)
	if _, err := os.Stat(built); err != nil {
		return fmt.Errorf("builder did not produce %s: %w", artifact, err)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o750); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	if err := moveFile(built, outPath); err != nil {
		return fmt.Errorf("failed to move artifact: %w", err)
	}
	return nil
}

// runCommand executes an external tool in dir, echoing it when requested.
// Stderr is captured and folded into the returned error.
func runCommand(ctx context.Context, printCommands bool, dir, name string, args ...string) error {
	if printCommands {
		if _, err := fmt.Fprintf(os.Stdout, "%s %s\n", name, strings.Join(args, " ")); err != nil {
			return fmt.Errorf("failed to print command: %w", err)
		}
	}
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("%s: %w", name, err)
		}
		return fmt.Errorf("%s: %s", name, msg)
	}
	return nil
}

// moveFile renames src to dst, falling back to copy+remove across
// filesystems (the staging dir often lives on tmpfs).
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src) // #nosec G304 -- staging path
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst) // #nosec G304 -- caller-selected output path
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
