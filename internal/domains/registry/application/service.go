package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	catalog "github.com/Apurer/order-registry/internal/domains/catalog/domain"
	customers "github.com/Apurer/order-registry/internal/domains/customers/domain"
	orders "github.com/Apurer/order-registry/internal/domains/orders/domain"
	types "github.com/Apurer/order-registry/internal/domains/registry/application/types"
	registry "github.com/Apurer/order-registry/internal/domains/registry/domain"
	"github.com/Apurer/order-registry/internal/domains/registry/ports"
	"github.com/Apurer/order-registry/internal/shared/dates"
	"github.com/Apurer/order-registry/internal/shared/projection"
)

// DefaultUrgentDays is how close a deadline must be for an order to be flagged urgent.
const DefaultUrgentDays = 3

// ArchiveHeader is the column layout of the completed-order export.
var ArchiveHeader = []string{"ID", "Customer", "Phone", "Products", "Creation Date", "Deadline", "Total Cost", "Total Sales", "Profit"}

// Service orchestrates the registry use cases. Calls are serialized; the aggregate itself is
// not safe for concurrent use.
type Service struct {
	mu         sync.Mutex
	book       *registry.AddressBook
	store      ports.SnapshotStore
	exporter   ports.Exporter
	now        func() time.Time
	layouts    []string
	urgentDays int
	autosave   bool

	persons  *projection.View[customers.Person]
	products *projection.View[catalog.Product]
	orders   *projection.View[*orders.Order]
}

type Option func(*Service)

// WithExporter sets the destination for archived orders.
func WithExporter(exporter ports.Exporter) Option {
	return func(s *Service) { s.exporter = exporter }
}

// WithClock overrides the time source used for creation dates and urgency.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithUrgentDays overrides DefaultUrgentDays.
func WithUrgentDays(days int) Option {
	return func(s *Service) { s.urgentDays = days }
}

// WithAutosave toggles saving a snapshot after every successful mutation.
func WithAutosave(enabled bool) Option {
	return func(s *Service) { s.autosave = enabled }
}

// WithDateLayouts replaces the accepted deadline layouts.
func WithDateLayouts(layouts []string) Option {
	return func(s *Service) { s.layouts = layouts }
}

// NewService wires the registry service. A nil store keeps everything in memory.
func NewService(store ports.SnapshotStore, opts ...Option) *Service {
	s := &Service{
		book:       registry.NewAddressBook(),
		store:      store,
		now:        time.Now,
		layouts:    dates.DefaultLayouts,
		urgentDays: DefaultUrgentDays,
		autosave:   true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if len(s.layouts) == 0 {
		s.layouts = dates.DefaultLayouts
	}
	s.persons = projection.NewView(s.book.Persons)
	s.products = projection.NewView(s.book.Products)
	s.orders = projection.NewView(s.book.Orders)
	return s
}

// Load replaces the registry with the stored snapshot. On failure the current state is kept.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return nil
	}
	snap, err := s.store.Load(ctx)
	if errors.Is(err, ports.ErrNoSnapshot) {
		return nil
	}
	if err != nil {
		return err
	}
	contents, err := DecodeSnapshot(snap, s.layouts)
	if err != nil {
		return mapError(err)
	}
	return mapError(s.book.ResetData(contents))
}

// Save writes the current registry to the store.
func (s *Service) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx)
}

// AddPerson registers a new customer.
func (s *Service) AddPerson(ctx context.Context, input types.PersonInput) (customers.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := newPerson(input)
	if err != nil {
		return customers.Person{}, mapError(err)
	}
	if err := s.book.AddPerson(p); err != nil {
		return customers.Person{}, mapError(err)
	}
	return p, s.changed(ctx)
}

// EditPerson replaces a customer and refreshes every order that references them.
func (s *Service) EditPerson(ctx context.Context, input types.EditPersonInput) (customers.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	target, err := s.personNamed(input.Target)
	if err != nil {
		return customers.Person{}, err
	}
	edited, err := newPerson(input.Person)
	if err != nil {
		return customers.Person{}, mapError(err)
	}
	if err := s.book.EditPerson(target, edited); err != nil {
		return customers.Person{}, mapError(err)
	}
	return edited, s.changed(ctx)
}

// DeletePerson removes a customer. Their existing orders are kept.
func (s *Service) DeletePerson(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	target, err := s.personNamed(name)
	if err != nil {
		return err
	}
	if err := s.book.DeletePerson(target); err != nil {
		return mapError(err)
	}
	return s.changed(ctx)
}

// FindPersonByPhone searches the currently filtered customers.
func (s *Service) FindPersonByPhone(_ context.Context, phone string) (customers.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.persons.Items() {
		if p.Phone() == phone {
			return p, nil
		}
	}
	return customers.Person{}, fmt.Errorf("%w: phone %s", customers.ErrPersonNotFound, phone)
}

// ListPersons returns the currently filtered customers.
func (s *Service) ListPersons(context.Context) ([]customers.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persons.Items(), nil
}

// FilterPersons installs a new customer filter; an empty filter shows everyone.
func (s *Service) FilterPersons(_ context.Context, filter types.PersonFilter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persons.SetPredicate(personPredicate(filter))
	return nil
}

// SearchPersons returns the customers matching filter without touching the installed filter.
func (s *Service) SearchPersons(_ context.Context, filter types.PersonFilter) ([]customers.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return matching(s.book.Persons(), personPredicate(filter)), nil
}

// AddProduct adds an entry to the menu.
func (s *Service) AddProduct(ctx context.Context, input types.ProductInput) (catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := catalog.ParseProduct(input.Name, input.Cost, input.Price)
	if err != nil {
		return catalog.Product{}, mapError(err)
	}
	if err := s.book.AddProduct(p); err != nil {
		return catalog.Product{}, mapError(err)
	}
	return p, s.changed(ctx)
}

// EditProduct replaces a menu entry. Existing orders keep their prices.
func (s *Service) EditProduct(ctx context.Context, input types.EditProductInput) (catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	target, err := s.productNamed(input.Target)
	if err != nil {
		return catalog.Product{}, err
	}
	edited, err := catalog.ParseProduct(input.Product.Name, input.Product.Cost, input.Product.Price)
	if err != nil {
		return catalog.Product{}, mapError(err)
	}
	if err := s.book.EditProduct(target, edited); err != nil {
		return catalog.Product{}, mapError(err)
	}
	return edited, s.changed(ctx)
}

// DeleteProduct removes a menu entry. Existing orders are untouched.
func (s *Service) DeleteProduct(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	target, err := s.productNamed(name)
	if err != nil {
		return err
	}
	if err := s.book.DeleteProduct(target); err != nil {
		return mapError(err)
	}
	return s.changed(ctx)
}

// ListProducts returns the currently filtered menu.
func (s *Service) ListProducts(context.Context) ([]catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products.Items(), nil
}

// FilterProducts installs a new menu filter.
func (s *Service) FilterProducts(_ context.Context, filter types.ProductFilter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products.SetPredicate(productPredicate(filter))
	return nil
}

// SearchProducts returns the menu entries matching filter without touching the installed filter.
func (s *Service) SearchProducts(_ context.Context, filter types.ProductFilter) ([]catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return matching(s.book.Products(), productPredicate(filter)), nil
}

// CreateOrder opens an order for an existing customer with products from the menu.
func (s *Service) CreateOrder(ctx context.Context, input types.CreateOrderInput) (*types.OrderProjection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	customer, err := s.resolveCustomer(input.CustomerPhone, input.CustomerName)
	if err != nil {
		return nil, err
	}
	order := orders.NewOrder(0, orders.CreationDateOf(s.now()))
	for _, item := range input.Items {
		product, err := s.productNamed(item.Product)
		if err != nil {
			return nil, err
		}
		q, err := orders.NewQuantity(item.Quantity)
		if err != nil {
			return nil, mapError(err)
		}
		order.SetQuantity(product, q)
	}
	if input.Deadline != "" {
		d, err := orders.ParseDeadline(input.Deadline, s.layouts)
		if err != nil {
			return nil, mapError(err)
		}
		order.SetDeadline(d)
	}
	saved, err := s.book.AddOrder(order, customer)
	if err != nil {
		return nil, mapError(err)
	}
	return s.project(saved), s.changed(ctx)
}

// GetOrder loads a single order by id.
func (s *Service) GetOrder(_ context.Context, id int) (*types.OrderProjection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := s.book.GetOrder(id)
	if err != nil {
		return nil, mapError(err)
	}
	return s.project(o), nil
}

// FindOrderByIndex returns the i-th order of the filtered view.
func (s *Service) FindOrderByIndex(_ context.Context, index int) (*types.OrderProjection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := s.orders.Get(index)
	if err != nil {
		return nil, mapError(err)
	}
	return s.project(o), nil
}

// DeleteOrder removes an order.
func (s *Service) DeleteOrder(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.book.DeleteOrder(id); err != nil {
		return mapError(err)
	}
	return s.changed(ctx)
}

// EditOrder sets the quantity of one product in an order. A product no longer on the menu can
// still be removed with a zero quantity.
func (s *Service) EditOrder(ctx context.Context, input types.EditOrderInput) (*types.OrderProjection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, err := orders.NewQuantity(input.Quantity)
	if err != nil {
		return nil, mapError(err)
	}
	product, err := s.productNamed(input.Product)
	if err != nil && q.IsZero() {
		product, err = catalog.NamedProduct(input.Product)
	}
	if err != nil {
		return nil, mapError(err)
	}
	o, err := s.book.EditOrder(input.OrderID, product, q)
	if err != nil {
		return nil, mapError(err)
	}
	return s.project(o), s.changed(ctx)
}

// SetOrderDeadline sets or overwrites an order's deadline.
func (s *Service) SetOrderDeadline(ctx context.Context, input types.SetDeadlineInput) (*types.OrderProjection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := orders.ParseDeadline(input.Deadline, s.layouts)
	if err != nil {
		return nil, mapError(err)
	}
	o, err := s.book.EditOrderDeadline(input.OrderID, d)
	if err != nil {
		return nil, mapError(err)
	}
	return s.project(o), s.changed(ctx)
}

// AdvanceOrderStage moves an order one stage forward.
func (s *Service) AdvanceOrderStage(ctx context.Context, id int) (*types.OrderProjection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := s.book.AdvanceOrderStage(id)
	if err != nil {
		return nil, mapError(err)
	}
	return s.project(o), s.changed(ctx)
}

// ClearCompletedOrders drops every completed order and reports how many were removed.
func (s *Service) ClearCompletedOrders(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cleared := len(s.completedOrders())
	if cleared == 0 {
		return 0, nil
	}
	s.book.ClearCompletedOrders()
	return cleared, s.changed(ctx)
}

// ListOrders returns the currently filtered orders.
func (s *Service) ListOrders(context.Context) ([]*types.OrderProjection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.orders.Items()
	out := make([]*types.OrderProjection, 0, len(items))
	for _, o := range items {
		out = append(out, s.project(o))
	}
	return out, nil
}

// FilterOrders installs a new order filter.
func (s *Service) FilterOrders(_ context.Context, filter types.OrderFilter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	predicate, err := orderPredicate(filter, s.now, s.urgentDays)
	if err != nil {
		return mapError(err)
	}
	s.orders.SetPredicate(predicate)
	return nil
}

// SearchOrders reads the orders matching filter and the list size under one lock. The installed
// filter is left as it is.
func (s *Service) SearchOrders(_ context.Context, filter types.OrderFilter) (*types.OrderListing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	predicate, err := orderPredicate(filter, s.now, s.urgentDays)
	if err != nil {
		return nil, mapError(err)
	}
	items := matching(s.book.Orders(), predicate)
	listing := &types.OrderListing{Orders: make([]*types.OrderProjection, 0, len(items)), Total: s.book.OrderListSize()}
	for _, o := range items {
		listing.Orders = append(listing.Orders, s.project(o))
	}
	return listing, nil
}

// ClearOrderFilter shows every order again.
func (s *Service) ClearOrderFilter(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders.SetPredicate(nil)
	return nil
}

// OrderListSize counts every order, ignoring the filter.
func (s *Service) OrderListSize(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.OrderListSize(), nil
}

// ArchiveCompletedOrders exports every completed order and then clears them. Nothing is
// cleared when the export fails.
func (s *Service) ArchiveCompletedOrders(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exporter == nil {
		return 0, ErrNoExporter
	}
	completed := s.completedOrders()
	if len(completed) == 0 {
		return 0, nil
	}
	rows := make([][]string, 0, len(completed))
	for _, o := range completed {
		rows = append(rows, archiveRow(o))
	}
	if err := s.exporter.Append(ctx, ArchiveHeader, rows); err != nil {
		return 0, fmt.Errorf("export completed orders: %w", err)
	}
	s.book.ClearCompletedOrders()
	return len(completed), s.changed(ctx)
}

func archiveRow(o *orders.Order) []string {
	return []string{
		strconv.Itoa(o.ID()),
		o.Customer().Name(),
		o.Customer().Phone(),
		o.ProductSummary(),
		o.CreationDate().String(),
		o.DeadlineString(),
		o.TotalCost().StringFixed(2),
		o.TotalSales().StringFixed(2),
		o.Profit().StringFixed(2),
	}
}

func (s *Service) completedOrders() []*orders.Order {
	var out []*orders.Order
	for _, o := range s.book.Orders() {
		if o.IsCompleted() {
			out = append(out, o)
		}
	}
	return out
}

func (s *Service) project(o *orders.Order) *types.OrderProjection {
	return &types.OrderProjection{Order: o, Urgent: o.IsUrgent(s.now(), s.urgentDays)}
}

func (s *Service) personNamed(name string) (customers.Person, error) {
	p, ok := s.book.FindPersonByName(name)
	if !ok {
		return customers.Person{}, fmt.Errorf("%w: %s", customers.ErrPersonNotFound, name)
	}
	return p, nil
}

func (s *Service) productNamed(name string) (catalog.Product, error) {
	p, ok := s.book.LookupProduct(name)
	if !ok {
		return catalog.Product{}, fmt.Errorf("%w: %s", catalog.ErrProductNotFound, name)
	}
	return p, nil
}

func (s *Service) resolveCustomer(phone, name string) (customers.Person, error) {
	if phone != "" {
		if p, ok := s.book.FindPersonByPhone(phone); ok {
			return p, nil
		}
	}
	if name != "" {
		if p, ok := s.book.FindPersonByName(name); ok {
			return p, nil
		}
	}
	return customers.Person{}, fmt.Errorf("%w: phone %q name %q", customers.ErrPersonNotFound, phone, name)
}

// changed runs after every successful mutation.
func (s *Service) changed(ctx context.Context) error {
	if !s.autosave {
		return nil
	}
	return s.saveLocked(ctx)
}

func (s *Service) saveLocked(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Save(ctx, EncodeSnapshot(s.book.Contents())); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

func newPerson(input types.PersonInput) (customers.Person, error) {
	return customers.NewPerson(input.Name, input.Phone, input.Email, input.Address, input.Remark, input.Tags)
}

var _ ports.Service = (*Service)(nil)
