// Package kernel implements the shared, embeddable analyzer behavior of
// spec §4.4: capped file reads, result builders, and the three-tier parsing
// fallback (§4.5). Concrete analyzers embed kernel.Base by value rather than
// subclassing a deep hierarchy — behavior that varies per analyzer (the AST
// extractor, the regex fallback, the pre-filter) is injected as a closure
// instead (spec §9).
package kernel

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/viant/archlens/fileindex"
	"github.com/viant/archlens/model"
)

// DefaultMaxFileBytes is the size cap applied to every file read through
// Base.ReadFile, matching spec §4.4's default of 2 MiB.
const DefaultMaxFileBytes = 2 * 1024 * 1024

// ErrFileTooLarge is returned by ReadFile when a file exceeds MaxFileBytes.
type ErrFileTooLarge struct {
	Path string
	Size int
}

func (e *ErrFileTooLarge) Error() string {
	return fmt.Sprintf("kernel: %s exceeds size limit (%d bytes)", e.Path, e.Size)
}

// Base is the small value every concrete analyzer embeds. It carries no
// per-scan mutable state; it is safe to embed by value and share across
// goroutines running different files of the same analyzer invocation.
type Base struct {
	Index        *fileindex.Index
	MaxFileBytes int
}

// NewBase returns a Base backed by idx with the default file size cap.
func NewBase(idx *fileindex.Index) Base {
	return Base{Index: idx, MaxFileBytes: DefaultMaxFileBytes}
}

// ReadFile reads path fully, refusing anything past MaxFileBytes so a single
// oversized file cannot stall or blow out the memory of a scan (spec §4.4).
func (b Base) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := b.Index.ReadText(ctx, path)
	if err != nil {
		return nil, err
	}
	limit := b.MaxFileBytes
	if limit <= 0 {
		limit = DefaultMaxFileBytes
	}
	if len(content) > limit {
		return nil, &ErrFileTooLarge{Path: path, Size: len(content)}
	}
	return content, nil
}

// ReadLines reads path's lines through the same size-capped path as ReadFile.
func (b Base) ReadLines(ctx context.Context, path string) ([]string, error) {
	content, err := b.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return splitLines(content), nil
}

// EmptyResult returns a successful, empty ScanResult for analyzerID.
func (b Base) EmptyResult(analyzerID string) *model.ScanResult {
	return model.EmptyResult(analyzerID)
}

// FailedResult returns a failed ScanResult for analyzerID.
func (b Base) FailedResult(analyzerID string, errs ...string) *model.ScanResult {
	return model.FailedResult(analyzerID, errs...)
}

// BuildSuccessResult assembles a successful ScanResult, matching spec §4.4's
// buildSuccessResult(components, deps, endpoints, flows, entities,
// relationships, warnings, statistics) shape.
func (b Base) BuildSuccessResult(
	analyzerID string,
	components []*model.Component,
	deps []model.Dependency,
	endpoints []model.ApiEndpoint,
	flows []model.MessageFlow,
	entities []model.DataEntity,
	relationships []model.Relationship,
	warnings []string,
	stats *model.ScanStatistics,
) *model.ScanResult {
	return model.BuildSuccessResult(analyzerID, components, deps, endpoints, flows, entities, relationships, warnings, stats)
}

// Parallelism returns the per-file worker count an analyzer should read
// with, honoring a per-analyzer `parallelism` override in ctx.Config and
// otherwise defaulting to min(8, runtime.NumCPU()) per spec §5.
func Parallelism(ctx *model.ScanContext) int {
	if n := ctx.ConfigInt("parallelism", 0); n > 0 {
		return n
	}
	n := runtime.NumCPU()
	if n > 8 {
		n = 8
	}
	if n < 1 {
		n = 1
	}
	return n
}

// ReadAllParallel reads every path in paths through the same size-capped
// path as ReadFile, bounded to parallelism concurrent reads. Results are
// index-aligned with paths, so a caller folds them into a ScanStatistics
// and its own accumulator slices sequentially afterward — the concurrency
// here is confined to I/O, never to result accumulation, so no caller-side
// locking is required (spec §5: "per-file parallelism within an analyzer").
func (b Base) ReadAllParallel(ctx context.Context, paths []string, parallelism int) ([][]byte, []error) {
	contents := make([][]byte, len(paths))
	errs := make([]error, len(paths))
	if parallelism < 1 {
		parallelism = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			content, err := b.ReadFile(gctx, path)
			contents[i], errs[i] = content, err
			return nil // per-file errors are reported per-slot, never aborting the group
		})
	}
	_ = g.Wait()

	return contents, errs
}

func splitLines(content []byte) []string {
	var lines []string
	start := 0
	for i, b := range content {
		if b == '\n' {
			end := i
			if end > start && content[end-1] == '\r' {
				end--
			}
			lines = append(lines, string(content[start:end]))
			start = i + 1
		}
	}
	if start < len(content) {
		lines = append(lines, string(content[start:]))
	}
	return lines
}
