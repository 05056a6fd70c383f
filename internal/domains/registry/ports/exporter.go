package ports

import "context"

// Exporter appends tabular rows to a destination. The header is written only when the
// destination is still empty.
type Exporter interface {
	Append(ctx context.Context, header []string, rows [][]string) error
}
