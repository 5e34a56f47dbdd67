package bank

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"bank2patch/pkg/patch"
)

// ImportStats summarizes one batch run.
type ImportStats struct {
	Imported       int
	Skipped        int
	DepthConflicts int
}

// Importer runs the sequential batch: rows stream through the assembler one
// at a time and each accepted patch is written immediately. The first decode
// failure aborts the run, leaving already-written files in place; re-running
// with unchanged input is idempotent because decoding is pure and paths
// derive from patch names only.
type Importer struct {
	assembler *Assembler
	writer    *patch.Writer
	logger    *zap.Logger
}

// NewImporter creates an Importer writing through w.
func NewImporter(a *Assembler, w *patch.Writer, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{assembler: a, writer: w, logger: logger}
}

// ImportFile imports a bank CSV file.
func (im *Importer) ImportFile(path string) (*ImportStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bank file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return im.Import(f)
}

// Import reads bank rows from r and writes one patch document per accepted
// row.
func (im *Importer) Import(r io.Reader) (*ImportStats, error) {
	stats := &ImportStats{}
	// The assembler counts conflicts cumulatively; report this batch only.
	conflictsBefore := im.assembler.DepthConflicts()
	err := EachPatch(r, im.assembler, func(p *patch.Patch) error {
		path, err := im.writer.Write(p)
		if err != nil {
			return err
		}
		stats.Imported++
		im.logger.Info("wrote patch",
			zap.String("name", p.Name),
			zap.String("path", path))
		return nil
	}, &stats.Skipped)
	stats.DepthConflicts = im.assembler.DepthConflicts() - conflictsBefore
	if err != nil {
		return stats, err
	}
	im.logger.Info("bank import complete",
		zap.Int("imported", stats.Imported),
		zap.Int("skipped", stats.Skipped),
		zap.Int("depth_conflicts", stats.DepthConflicts))
	return stats, nil
}

// EachPatch decodes bank rows from r and passes each accepted patch to fn,
// counting silent exclusions in skipped when non-nil. Processing stops at the
// first decode or callback error.
func EachPatch(r io.Reader, a *Assembler, fn func(*patch.Patch) error, skipped *int) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // positional access tolerates ragged rows

	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read bank row %d: %w", row, err)
		}
		p, err := a.PatchFromRow(record)
		if err != nil {
			return fmt.Errorf("row %d: %w", row, err)
		}
		if p == nil {
			if skipped != nil {
				*skipped++
			}
			continue
		}
		if err := fn(p); err != nil {
			return err
		}
	}
}

// DecodePatches decodes every accepted row into memory, for callers that
// present a bank rather than write it out.
func DecodePatches(r io.Reader, a *Assembler) ([]*patch.Patch, int, error) {
	var patches []*patch.Patch
	skipped := 0
	err := EachPatch(r, a, func(p *patch.Patch) error {
		patches = append(patches, p)
		return nil
	}, &skipped)
	if err != nil {
		return nil, skipped, err
	}
	return patches, skipped, nil
}
