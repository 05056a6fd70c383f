// Package csvfile appends comma-separated rows to a file on disk.
package csvfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Apurer/order-registry/internal/domains/registry/ports"
)

var _ ports.Exporter = (*Exporter)(nil)

// Exporter appends rows to a file. Fields are joined with commas and are not quoted or
// escaped, so a field containing a comma shifts the columns of its row.
type Exporter struct {
	mu   sync.Mutex
	path string
}

func NewExporter(path string) *Exporter {
	if path == "" {
		path = "data/completed_orders.csv"
	}
	return &Exporter{path: path}
}

func (e *Exporter) Path() string { return e.path }

// Append writes header first when the file is missing or empty, then each row on a new line.
func (e *Exporter) Append(ctx context.Context, header []string, rows [][]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(e.path), 0o750); err != nil {
		return fmt.Errorf("create dirs: %w", err)
	}
	f, err := os.OpenFile(e.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
	if err != nil {
		return fmt.Errorf("open export file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("stat export file: %w", err)
	}
	if err := appendPayload(f, info.Size(), payload(info.Size() == 0, header, rows)); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// appendFile is the part of *os.File used to append and roll back.
type appendFile interface {
	io.Writer
	Truncate(size int64) error
}

// appendPayload writes payload in one call. On a failed or short write the file is cut back to
// size so a retry does not duplicate rows.
func appendPayload(f appendFile, size int64, payload string) error {
	if _, err := io.WriteString(f, payload); err != nil {
		if truncErr := f.Truncate(size); truncErr != nil {
			return fmt.Errorf("write export file: %w", errors.Join(err, truncErr))
		}
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}

func payload(withHeader bool, header []string, rows [][]string) string {
	var b strings.Builder
	if withHeader {
		b.WriteString(joinRow(header))
	}
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(joinRow(row))
	}
	return b.String()
}

func joinRow(fields []string) string {
	return strings.Join(fields, ",")
}
