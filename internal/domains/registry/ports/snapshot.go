package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNoSnapshot is returned by a store that has never been saved to.
var ErrNoSnapshot = errors.New("no snapshot stored")

// Snapshot is the persisted form of the whole registry.
type Snapshot struct {
	Persons  []PersonRecord  `json:"persons"`
	Products []ProductRecord `json:"products"`
	Orders   []OrderRecord   `json:"orders"`
}

type PersonRecord struct {
	Name    string   `json:"name"`
	Phone   string   `json:"phone"`
	Email   string   `json:"email,omitempty"`
	Address string   `json:"address,omitempty"`
	Remark  string   `json:"remark,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

type ProductRecord struct {
	Name  string          `json:"name"`
	Cost  decimal.Decimal `json:"cost"`
	Price decimal.Decimal `json:"price"`
}

// OrderRecord embeds the customer by name and phone and the products by name. Totals are
// optional and recomputed from the product map when absent.
type OrderRecord struct {
	ID            int              `json:"id"`
	ProductMap    map[string]int   `json:"productMap"`
	CustomerName  string           `json:"customerName"`
	CustomerPhone string           `json:"customerPhone"`
	CreationDate  string           `json:"creationDate"`
	Deadline      string           `json:"deadline,omitempty"`
	Stage         string           `json:"stage"`
	TotalCost     *decimal.Decimal `json:"totalCost,omitempty"`
	TotalSales    *decimal.Decimal `json:"totalSales,omitempty"`
	Profit        *decimal.Decimal `json:"profit,omitempty"`
}

// SnapshotStore persists whole-registry snapshots.
type SnapshotStore interface {
	// Load returns the last saved snapshot, or ErrNoSnapshot when nothing was saved yet.
	Load(ctx context.Context) (*Snapshot, error)
	// Save replaces the stored snapshot.
	Save(ctx context.Context, snapshot *Snapshot) error
}
