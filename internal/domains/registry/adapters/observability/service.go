package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	catalog "github.com/Apurer/order-registry/internal/domains/catalog/domain"
	customers "github.com/Apurer/order-registry/internal/domains/customers/domain"
	types "github.com/Apurer/order-registry/internal/domains/registry/application/types"
	"github.com/Apurer/order-registry/internal/domains/registry/ports"
)

const tracerName = "github.com/Apurer/order-registry/internal/domains/registry/adapters/observability/service"

// Service decorates the registry application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// Load replaces the registry with the stored snapshot.
func (s *Service) Load(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "Service.Load")
	defer span.End()

	if err := s.inner.Load(ctx); err != nil {
		return s.handleError(ctx, span, err, "failed to load registry snapshot")
	}
	s.logInfo(ctx, "registry snapshot loaded")
	return nil
}

// Save writes the registry snapshot.
func (s *Service) Save(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "Service.Save")
	defer span.End()

	if err := s.inner.Save(ctx); err != nil {
		return s.handleError(ctx, span, err, "failed to save registry snapshot")
	}
	s.metrics.recordSnapshotSave(ctx)
	s.logInfo(ctx, "registry snapshot saved")
	return nil
}

// AddPerson registers a customer.
func (s *Service) AddPerson(ctx context.Context, input types.PersonInput) (customers.Person, error) {
	ctx, span := s.startSpan(ctx, "Service.AddPerson", attribute.String("person.name", input.Name))
	defer span.End()

	s.logInfo(ctx, "adding person", slog.String("person.name", input.Name))
	result, err := s.inner.AddPerson(ctx, input)
	if err != nil {
		return result, s.handleError(ctx, span, err, "failed to add person", slog.String("person.name", input.Name))
	}
	s.logInfo(ctx, "person added", slog.String("person.name", result.Name()))
	return result, nil
}

// EditPerson replaces a customer and refreshes their orders.
func (s *Service) EditPerson(ctx context.Context, input types.EditPersonInput) (customers.Person, error) {
	ctx, span := s.startSpan(ctx, "Service.EditPerson", attribute.String("person.name", input.Target))
	defer span.End()

	s.logInfo(ctx, "editing person", slog.String("person.name", input.Target))
	result, err := s.inner.EditPerson(ctx, input)
	if err != nil {
		return result, s.handleError(ctx, span, err, "failed to edit person", slog.String("person.name", input.Target))
	}
	s.metrics.recordPersonEdited(ctx)
	s.logInfo(ctx, "person edited", slog.String("person.name", result.Name()))
	return result, nil
}

// DeletePerson removes a customer.
func (s *Service) DeletePerson(ctx context.Context, name string) error {
	ctx, span := s.startSpan(ctx, "Service.DeletePerson", attribute.String("person.name", name))
	defer span.End()

	if err := s.inner.DeletePerson(ctx, name); err != nil {
		return s.handleError(ctx, span, err, "failed to delete person", slog.String("person.name", name))
	}
	s.logInfo(ctx, "person deleted", slog.String("person.name", name))
	return nil
}

// FindPersonByPhone searches the filtered customers.
func (s *Service) FindPersonByPhone(ctx context.Context, phone string) (customers.Person, error) {
	ctx, span := s.startSpan(ctx, "Service.FindPersonByPhone")
	defer span.End()

	result, err := s.inner.FindPersonByPhone(ctx, phone)
	if err != nil {
		return result, s.handleError(ctx, span, err, "failed to find person by phone")
	}
	return result, nil
}

// ListPersons returns the filtered customers.
func (s *Service) ListPersons(ctx context.Context) ([]customers.Person, error) {
	ctx, span := s.startSpan(ctx, "Service.ListPersons")
	defer span.End()

	result, err := s.inner.ListPersons(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list persons")
	}
	span.SetAttributes(attribute.Int("person.result.count", len(result)))
	return result, nil
}

// FilterPersons installs a customer filter.
func (s *Service) FilterPersons(ctx context.Context, filter types.PersonFilter) error {
	ctx, span := s.startSpan(ctx, "Service.FilterPersons", attribute.StringSlice("person.filter.keywords", filter.Keywords))
	defer span.End()

	if err := s.inner.FilterPersons(ctx, filter); err != nil {
		return s.handleError(ctx, span, err, "failed to filter persons")
	}
	return nil
}

// SearchPersons returns the customers matching filter.
func (s *Service) SearchPersons(ctx context.Context, filter types.PersonFilter) ([]customers.Person, error) {
	ctx, span := s.startSpan(ctx, "Service.SearchPersons",
		attribute.StringSlice("person.filter.keywords", filter.Keywords),
		attribute.String("person.filter.tag", filter.Tag),
	)
	defer span.End()

	result, err := s.inner.SearchPersons(ctx, filter)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to search persons")
	}
	span.SetAttributes(attribute.Int("person.result.count", len(result)))
	return result, nil
}

// AddProduct adds a menu entry.
func (s *Service) AddProduct(ctx context.Context, input types.ProductInput) (catalog.Product, error) {
	ctx, span := s.startSpan(ctx, "Service.AddProduct", attribute.String("product.name", input.Name))
	defer span.End()

	s.logInfo(ctx, "adding product", slog.String("product.name", input.Name))
	result, err := s.inner.AddProduct(ctx, input)
	if err != nil {
		return result, s.handleError(ctx, span, err, "failed to add product", slog.String("product.name", input.Name))
	}
	s.logInfo(ctx, "product added", slog.String("product.name", result.Name), slog.String("product.price", result.Price.String()))
	return result, nil
}

// EditProduct replaces a menu entry.
func (s *Service) EditProduct(ctx context.Context, input types.EditProductInput) (catalog.Product, error) {
	ctx, span := s.startSpan(ctx, "Service.EditProduct", attribute.String("product.name", input.Target))
	defer span.End()

	s.logInfo(ctx, "editing product", slog.String("product.name", input.Target))
	result, err := s.inner.EditProduct(ctx, input)
	if err != nil {
		return result, s.handleError(ctx, span, err, "failed to edit product", slog.String("product.name", input.Target))
	}
	s.logInfo(ctx, "product edited", slog.String("product.name", result.Name))
	return result, nil
}

// DeleteProduct removes a menu entry.
func (s *Service) DeleteProduct(ctx context.Context, name string) error {
	ctx, span := s.startSpan(ctx, "Service.DeleteProduct", attribute.String("product.name", name))
	defer span.End()

	if err := s.inner.DeleteProduct(ctx, name); err != nil {
		return s.handleError(ctx, span, err, "failed to delete product", slog.String("product.name", name))
	}
	s.logInfo(ctx, "product deleted", slog.String("product.name", name))
	return nil
}

// ListProducts returns the filtered menu.
func (s *Service) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	ctx, span := s.startSpan(ctx, "Service.ListProducts")
	defer span.End()

	result, err := s.inner.ListProducts(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products")
	}
	span.SetAttributes(attribute.Int("product.result.count", len(result)))
	return result, nil
}

// SearchProducts returns the menu entries matching filter.
func (s *Service) SearchProducts(ctx context.Context, filter types.ProductFilter) ([]catalog.Product, error) {
	ctx, span := s.startSpan(ctx, "Service.SearchProducts", attribute.StringSlice("product.filter.keywords", filter.Keywords))
	defer span.End()

	result, err := s.inner.SearchProducts(ctx, filter)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to search products")
	}
	span.SetAttributes(attribute.Int("product.result.count", len(result)))
	return result, nil
}

// FilterProducts installs a menu filter.
func (s *Service) FilterProducts(ctx context.Context, filter types.ProductFilter) error {
	ctx, span := s.startSpan(ctx, "Service.FilterProducts", attribute.StringSlice("product.filter.keywords", filter.Keywords))
	defer span.End()

	if err := s.inner.FilterProducts(ctx, filter); err != nil {
		return s.handleError(ctx, span, err, "failed to filter products")
	}
	return nil
}

// CreateOrder opens an order.
func (s *Service) CreateOrder(ctx context.Context, input types.CreateOrderInput) (*types.OrderProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.CreateOrder",
		attribute.String("person.name", input.CustomerName),
		attribute.Int("order.items", len(input.Items)),
	)
	defer span.End()

	s.logInfo(ctx, "creating order", slog.String("person.name", input.CustomerName), slog.Int("items", len(input.Items)))
	result, err := s.inner.CreateOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order", slog.String("person.name", input.CustomerName))
	}
	if result != nil && result.Order != nil {
		span.SetAttributes(attribute.Int("order.id", result.Order.ID()))
		s.metrics.recordOrderCreated(ctx)
		s.logInfo(ctx, "order created",
			slog.Int("order.id", result.Order.ID()),
			slog.String("person.name", result.Order.Customer().Name()),
			slog.String("order.total_sales", result.Order.TotalSales().String()),
		)
	}
	return result, nil
}

// GetOrder loads one order.
func (s *Service) GetOrder(ctx context.Context, id int) (*types.OrderProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.GetOrder", attribute.Int("order.id", id))
	defer span.End()

	result, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int("order.id", id))
	}
	return result, nil
}

// FindOrderByIndex returns the i-th filtered order.
func (s *Service) FindOrderByIndex(ctx context.Context, index int) (*types.OrderProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.FindOrderByIndex", attribute.Int("order.index", index))
	defer span.End()

	result, err := s.inner.FindOrderByIndex(ctx, index)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to find order by index", slog.Int("order.index", index))
	}
	return result, nil
}

// DeleteOrder removes an order.
func (s *Service) DeleteOrder(ctx context.Context, id int) error {
	ctx, span := s.startSpan(ctx, "Service.DeleteOrder", attribute.Int("order.id", id))
	defer span.End()

	if err := s.inner.DeleteOrder(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete order", slog.Int("order.id", id))
	}
	s.logInfo(ctx, "order deleted", slog.Int("order.id", id))
	return nil
}

// EditOrder changes the quantity of one product.
func (s *Service) EditOrder(ctx context.Context, input types.EditOrderInput) (*types.OrderProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.EditOrder",
		attribute.Int("order.id", input.OrderID),
		attribute.String("product.name", input.Product),
		attribute.Int("order.quantity", input.Quantity),
	)
	defer span.End()

	result, err := s.inner.EditOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to edit order", slog.Int("order.id", input.OrderID), slog.String("product.name", input.Product))
	}
	s.logInfo(ctx, "order edited",
		slog.Int("order.id", input.OrderID),
		slog.String("product.name", input.Product),
		slog.Int("quantity", input.Quantity),
	)
	return result, nil
}

// SetOrderDeadline sets an order's deadline.
func (s *Service) SetOrderDeadline(ctx context.Context, input types.SetDeadlineInput) (*types.OrderProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.SetOrderDeadline", attribute.Int("order.id", input.OrderID))
	defer span.End()

	result, err := s.inner.SetOrderDeadline(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to set order deadline", slog.Int("order.id", input.OrderID), slog.String("deadline", input.Deadline))
	}
	if result != nil && result.Order != nil {
		s.logInfo(ctx, "order deadline set", slog.Int("order.id", input.OrderID), slog.String("deadline", result.Order.DeadlineString()))
	}
	return result, nil
}

// AdvanceOrderStage moves an order one stage forward.
func (s *Service) AdvanceOrderStage(ctx context.Context, id int) (*types.OrderProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.AdvanceOrderStage", attribute.Int("order.id", id))
	defer span.End()

	result, err := s.inner.AdvanceOrderStage(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to advance order stage", slog.Int("order.id", id))
	}
	if result != nil && result.Order != nil {
		stage := result.Order.Stage().String()
		span.SetAttributes(attribute.String("stage", stage))
		s.metrics.recordOrderAdvanced(ctx, stage)
		s.logInfo(ctx, "order stage advanced", slog.Int("order.id", id), slog.String("stage", stage))
	}
	return result, nil
}

// ClearCompletedOrders drops completed orders.
func (s *Service) ClearCompletedOrders(ctx context.Context) (int, error) {
	ctx, span := s.startSpan(ctx, "Service.ClearCompletedOrders")
	defer span.End()

	cleared, err := s.inner.ClearCompletedOrders(ctx)
	if err != nil {
		return cleared, s.handleError(ctx, span, err, "failed to clear completed orders")
	}
	span.SetAttributes(attribute.Int("order.cleared", cleared))
	s.metrics.recordOrdersCleared(ctx, cleared)
	s.logInfo(ctx, "completed orders cleared", slog.Int("count", cleared))
	return cleared, nil
}

// ListOrders returns the filtered orders.
func (s *Service) ListOrders(ctx context.Context) ([]*types.OrderProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.ListOrders")
	defer span.End()

	result, err := s.inner.ListOrders(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("order.result.count", len(result)))
	return result, nil
}

// FilterOrders installs an order filter.
func (s *Service) FilterOrders(ctx context.Context, filter types.OrderFilter) error {
	ctx, span := s.startSpan(ctx, "Service.FilterOrders",
		attribute.String("order.filter.stage", filter.Stage),
		attribute.Bool("order.filter.urgent", filter.UrgentOnly),
	)
	defer span.End()

	if err := s.inner.FilterOrders(ctx, filter); err != nil {
		return s.handleError(ctx, span, err, "failed to filter orders", slog.String("stage", filter.Stage))
	}
	return nil
}

// SearchOrders returns the orders matching filter and the list size.
func (s *Service) SearchOrders(ctx context.Context, filter types.OrderFilter) (*types.OrderListing, error) {
	ctx, span := s.startSpan(ctx, "Service.SearchOrders",
		attribute.String("order.filter.stage", filter.Stage),
		attribute.Bool("order.filter.urgent", filter.UrgentOnly),
	)
	defer span.End()

	result, err := s.inner.SearchOrders(ctx, filter)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to search orders", slog.String("stage", filter.Stage))
	}
	span.SetAttributes(attribute.Int("order.result.count", len(result.Orders)))
	return result, nil
}

// ClearOrderFilter shows every order again.
func (s *Service) ClearOrderFilter(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "Service.ClearOrderFilter")
	defer span.End()

	if err := s.inner.ClearOrderFilter(ctx); err != nil {
		return s.handleError(ctx, span, err, "failed to clear order filter")
	}
	return nil
}

// OrderListSize counts every order.
func (s *Service) OrderListSize(ctx context.Context) (int, error) {
	ctx, span := s.startSpan(ctx, "Service.OrderListSize")
	defer span.End()

	size, err := s.inner.OrderListSize(ctx)
	if err != nil {
		return size, s.handleError(ctx, span, err, "failed to count orders")
	}
	return size, nil
}

// ArchiveCompletedOrders exports and clears completed orders.
func (s *Service) ArchiveCompletedOrders(ctx context.Context) (int, error) {
	ctx, span := s.startSpan(ctx, "Service.ArchiveCompletedOrders")
	defer span.End()

	s.logInfo(ctx, "archiving completed orders")
	archived, err := s.inner.ArchiveCompletedOrders(ctx)
	if err != nil {
		return archived, s.handleError(ctx, span, err, "failed to archive completed orders")
	}
	span.SetAttributes(attribute.Int("order.archived", archived))
	s.metrics.recordOrdersCleared(ctx, archived)
	s.logInfo(ctx, "completed orders archived", slog.Int("count", archived))
	return archived, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	ordersCreated  metric.Int64Counter
	ordersAdvanced metric.Int64Counter
	ordersCleared  metric.Int64Counter
	personsEdited  metric.Int64Counter
	snapshotSaves  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersCreated, _ := m.Int64Counter("registry.orders_created", metric.WithDescription("Number of orders created"))
	ordersAdvanced, _ := m.Int64Counter("registry.orders_advanced", metric.WithDescription("Number of order stage advances"))
	ordersCleared, _ := m.Int64Counter("registry.orders_cleared", metric.WithDescription("Number of completed orders cleared or archived"))
	personsEdited, _ := m.Int64Counter("registry.persons_edited", metric.WithDescription("Number of customer edits"))
	snapshotSaves, _ := m.Int64Counter("registry.snapshot_saves", metric.WithDescription("Number of explicit snapshot saves"))
	return serviceMetrics{
		ordersCreated:  ordersCreated,
		ordersAdvanced: ordersAdvanced,
		ordersCleared:  ordersCleared,
		personsEdited:  personsEdited,
		snapshotSaves:  snapshotSaves,
	}
}

func (m serviceMetrics) recordOrderCreated(ctx context.Context) {
	addCounter(ctx, m.ordersCreated, 1)
}

func (m serviceMetrics) recordOrderAdvanced(ctx context.Context, stage string) {
	addCounter(ctx, m.ordersAdvanced, 1, attribute.String("stage", stage))
}

func (m serviceMetrics) recordOrdersCleared(ctx context.Context, n int) {
	if n <= 0 {
		return
	}
	addCounter(ctx, m.ordersCleared, int64(n))
}

func (m serviceMetrics) recordPersonEdited(ctx context.Context) {
	addCounter(ctx, m.personsEdited, 1)
}

func (m serviceMetrics) recordSnapshotSave(ctx context.Context) {
	addCounter(ctx, m.snapshotSaves, 1)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
