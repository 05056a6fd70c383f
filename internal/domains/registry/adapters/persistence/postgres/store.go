// Package postgres persists registry snapshots in PostgreSQL using GORM, one table per collection.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/order-registry/internal/domains/registry/ports"
)

var _ ports.SnapshotStore = (*Store)(nil)

// Store writes a snapshot by upserting every row and deleting rows that are no longer present,
// all in one transaction. The caller manages the DB lifecycle and schema migrations.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

type personRecord struct {
	Name      string         `gorm:"primaryKey;column:name"`
	Position  int            `gorm:"column:position;index"`
	Phone     string         `gorm:"column:phone;index"`
	Email     string         `gorm:"column:email"`
	Address   string         `gorm:"column:address"`
	Remark    string         `gorm:"column:remark"`
	Tags      pq.StringArray `gorm:"column:tags;type:text[]"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (personRecord) TableName() string { return "registry_persons" }

type productRecord struct {
	Name      string          `gorm:"primaryKey;column:name"`
	Position  int             `gorm:"column:position;index"`
	Cost      decimal.Decimal `gorm:"column:cost;type:numeric"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "registry_products" }

type orderRecord struct {
	ID            int                 `gorm:"primaryKey;autoIncrement:false;column:id"`
	ProductMap    map[string]int      `gorm:"column:product_map;serializer:json"`
	CustomerName  string              `gorm:"column:customer_name;index"`
	CustomerPhone string              `gorm:"column:customer_phone"`
	CreationDate  string              `gorm:"column:creation_date"`
	Deadline      string              `gorm:"column:deadline"`
	Stage         string              `gorm:"column:stage;type:varchar(32);index"`
	TotalCost     decimal.NullDecimal `gorm:"column:total_cost;type:numeric"`
	TotalSales    decimal.NullDecimal `gorm:"column:total_sales;type:numeric"`
	Profit        decimal.NullDecimal `gorm:"column:profit;type:numeric"`
	UpdatedAt     time.Time           `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "registry_orders" }

// Models lists the tables this store reads and writes, for schema migration.
func Models() []any {
	return []any{&personRecord{}, &productRecord{}, &orderRecord{}}
}

// Load reads all three tables. When every table is empty it reports ports.ErrNoSnapshot.
func (s *Store) Load(ctx context.Context) (*ports.Snapshot, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	var (
		persons  []personRecord
		products []productRecord
		orders   []orderRecord
	)
	if err := db.Order("position").Find(&persons).Error; err != nil {
		return nil, err
	}
	if err := db.Order("position").Find(&products).Error; err != nil {
		return nil, err
	}
	if err := db.Order("id").Find(&orders).Error; err != nil {
		return nil, err
	}
	if len(persons) == 0 && len(products) == 0 && len(orders) == 0 {
		return nil, ports.ErrNoSnapshot
	}
	snap := &ports.Snapshot{
		Persons:  make([]ports.PersonRecord, 0, len(persons)),
		Products: make([]ports.ProductRecord, 0, len(products)),
		Orders:   make([]ports.OrderRecord, 0, len(orders)),
	}
	for _, r := range persons {
		snap.Persons = append(snap.Persons, r.toPort())
	}
	for _, r := range products {
		snap.Products = append(snap.Products, ports.ProductRecord{Name: r.Name, Cost: r.Cost, Price: r.Price})
	}
	for _, r := range orders {
		snap.Orders = append(snap.Orders, r.toPort())
	}
	return snap, nil
}

// Save replaces the stored snapshot.
func (s *Store) Save(ctx context.Context, snapshot *ports.Snapshot) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if snapshot == nil {
		snapshot = &ports.Snapshot{}
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		persons := make([]personRecord, 0, len(snapshot.Persons))
		names := make([]string, 0, len(snapshot.Persons))
		for i, p := range snapshot.Persons {
			persons = append(persons, toPersonRecord(i, p))
			names = append(names, p.Name)
		}
		if err := replaceRows(tx, &personRecord{}, "name", names, persons); err != nil {
			return err
		}

		products := make([]productRecord, 0, len(snapshot.Products))
		productNames := make([]string, 0, len(snapshot.Products))
		for i, p := range snapshot.Products {
			products = append(products, productRecord{Name: p.Name, Position: i, Cost: p.Cost, Price: p.Price, UpdatedAt: time.Now().UTC()})
			productNames = append(productNames, p.Name)
		}
		if err := replaceRows(tx, &productRecord{}, "name", productNames, products); err != nil {
			return err
		}

		orders := make([]orderRecord, 0, len(snapshot.Orders))
		ids := make([]int, 0, len(snapshot.Orders))
		for _, o := range snapshot.Orders {
			orders = append(orders, toOrderRecord(o))
			ids = append(ids, o.ID)
		}
		return replaceRows(tx, &orderRecord{}, "id", ids, orders)
	})
}

// replaceRows deletes every row whose key is not in keys and upserts rows.
func replaceRows[K any, R any](tx *gorm.DB, model any, key string, keys []K, rows []R) error {
	del := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
	if len(keys) > 0 {
		del = del.Where(key+" NOT IN ?", keys)
	}
	if err := del.Delete(model).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: key}},
		UpdateAll: true,
	}).Create(&rows).Error
}

func (s *Store) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres snapshot store not configured")
	}
	return nil
}

func toPersonRecord(position int, p ports.PersonRecord) personRecord {
	return personRecord{
		Name:      p.Name,
		Position:  position,
		Phone:     p.Phone,
		Email:     p.Email,
		Address:   p.Address,
		Remark:    p.Remark,
		Tags:      pq.StringArray(p.Tags),
		UpdatedAt: time.Now().UTC(),
	}
}

func (r personRecord) toPort() ports.PersonRecord {
	var tags []string
	if len(r.Tags) > 0 {
		tags = append(tags, r.Tags...)
	}
	return ports.PersonRecord{
		Name:    r.Name,
		Phone:   r.Phone,
		Email:   r.Email,
		Address: r.Address,
		Remark:  r.Remark,
		Tags:    tags,
	}
}

func toOrderRecord(o ports.OrderRecord) orderRecord {
	return orderRecord{
		ID:            o.ID,
		ProductMap:    o.ProductMap,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		CreationDate:  o.CreationDate,
		Deadline:      o.Deadline,
		Stage:         o.Stage,
		TotalCost:     toNull(o.TotalCost),
		TotalSales:    toNull(o.TotalSales),
		Profit:        toNull(o.Profit),
		UpdatedAt:     time.Now().UTC(),
	}
}

func (r orderRecord) toPort() ports.OrderRecord {
	return ports.OrderRecord{
		ID:            r.ID,
		ProductMap:    r.ProductMap,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CreationDate:  r.CreationDate,
		Deadline:      r.Deadline,
		Stage:         r.Stage,
		TotalCost:     fromNull(r.TotalCost),
		TotalSales:    fromNull(r.TotalSales),
		Profit:        fromNull(r.Profit),
	}
}

func toNull(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func fromNull(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
