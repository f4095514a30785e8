package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"

	"ledger/internal/core"
	"ledger/internal/log"
)

// ledgerFileMode applies to a newly created ledger file. An existing file
// keeps its own permissions across saves.
const ledgerFileMode = 0o644

// FileRepository keeps the ledger in a flat text file, one encoded expense
// per line.
type FileRepository struct {
	path   string
	logger *log.Logger
}

func NewFileRepository(path string, logger *log.Logger) *FileRepository {
	if logger == nil {
		logger = log.Discard()
	}
	return &FileRepository{
		path:   path,
		logger: logger.WithComponent(log.ComponentStorage).With(log.FieldLocation, path),
	}
}

// Location returns the ledger file path.
func (r *FileRepository) Location() string {
	return r.path
}

// Load reads every line of the ledger file in order. A missing file is an
// empty ledger. Lines that do not decode are counted and dropped. When
// reading fails part way through, the expenses read so far are returned
// together with the error.
func (r *FileRepository) Load(ctx context.Context) (core.LoadResult, error) {
	var res core.LoadResult

	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.DebugContext(ctx, "ledger file not found, starting empty")
			return res, nil
		}
		return res, fmt.Errorf("open ledger file: %w", err)
	}
	defer f.Close()
	res.Existed = true

	br := bufio.NewReader(f)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			e, ok := core.Decode(strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"))
			if ok {
				res.Expenses = append(res.Expenses, e)
			} else {
				res.Skipped++
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			r.logger.WarnContext(ctx, "ledger file read interrupted",
				log.FieldCount, len(res.Expenses),
				log.FieldError, err)
			return res, fmt.Errorf("read ledger file: %w", err)
		}
	}

	r.logger.InfoContext(ctx, "ledger file loaded",
		log.FieldCount, len(res.Expenses),
		log.FieldSkipped, res.Skipped)
	return res, nil
}

// Save replaces the ledger file with expenses in order. The new content is
// written to a pending file next to the ledger and renamed over it, so a
// failed save leaves the previous ledger untouched.
func (r *FileRepository) Save(ctx context.Context, expenses []core.Expense) error {
	pf, err := renameio.NewPendingFile(r.path,
		renameio.WithTempDir(filepath.Dir(r.path)),
		renameio.WithPermissions(ledgerFileMode),
		renameio.WithExistingPermissions())
	if err != nil {
		return fmt.Errorf("create pending ledger file: %w", err)
	}
	defer pf.Cleanup()

	w := bufio.NewWriter(pf)
	for _, e := range expenses {
		if _, err := w.WriteString(core.Encode(e) + "\n"); err != nil {
			return fmt.Errorf("write ledger line: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush ledger file: %w", err)
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace ledger file: %w", err)
	}

	r.logger.InfoContext(ctx, "ledger file saved", log.FieldCount, len(expenses))
	return nil
}
