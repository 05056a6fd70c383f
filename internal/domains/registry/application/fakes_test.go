package application

import (
	"context"
	"errors"

	"github.com/Apurer/order-registry/internal/domains/registry/ports"
)

type fakeStore struct {
	snapshot *ports.Snapshot
	saves    int
	loadErr  error
	saveErr  error
}

func (f *fakeStore) Load(context.Context) (*ports.Snapshot, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.snapshot == nil {
		return nil, ports.ErrNoSnapshot
	}
	return f.snapshot, nil
}

func (f *fakeStore) Save(_ context.Context, snapshot *ports.Snapshot) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.snapshot = snapshot
	return nil
}

type fakeExporter struct {
	header []string
	rows   [][]string
	err    error
}

func (f *fakeExporter) Append(_ context.Context, header []string, rows [][]string) error {
	if f.err != nil {
		return f.err
	}
	f.header = header
	f.rows = append(f.rows, rows...)
	return nil
}

var errDiskFull = errors.New("disk full")
