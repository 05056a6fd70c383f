package ports

import (
	"context"

	catalog "github.com/Apurer/order-registry/internal/domains/catalog/domain"
	customers "github.com/Apurer/order-registry/internal/domains/customers/domain"
	types "github.com/Apurer/order-registry/internal/domains/registry/application/types"
)

// Service defines the registry use cases exposed to adapters (inbound/driving port).
type Service interface {
	Load(ctx context.Context) error
	Save(ctx context.Context) error

	AddPerson(ctx context.Context, input types.PersonInput) (customers.Person, error)
	EditPerson(ctx context.Context, input types.EditPersonInput) (customers.Person, error)
	DeletePerson(ctx context.Context, name string) error
	FindPersonByPhone(ctx context.Context, phone string) (customers.Person, error)
	ListPersons(ctx context.Context) ([]customers.Person, error)
	FilterPersons(ctx context.Context, filter types.PersonFilter) error
	SearchPersons(ctx context.Context, filter types.PersonFilter) ([]customers.Person, error)

	AddProduct(ctx context.Context, input types.ProductInput) (catalog.Product, error)
	EditProduct(ctx context.Context, input types.EditProductInput) (catalog.Product, error)
	DeleteProduct(ctx context.Context, name string) error
	ListProducts(ctx context.Context) ([]catalog.Product, error)
	FilterProducts(ctx context.Context, filter types.ProductFilter) error
	SearchProducts(ctx context.Context, filter types.ProductFilter) ([]catalog.Product, error)

	CreateOrder(ctx context.Context, input types.CreateOrderInput) (*types.OrderProjection, error)
	GetOrder(ctx context.Context, id int) (*types.OrderProjection, error)
	FindOrderByIndex(ctx context.Context, index int) (*types.OrderProjection, error)
	DeleteOrder(ctx context.Context, id int) error
	EditOrder(ctx context.Context, input types.EditOrderInput) (*types.OrderProjection, error)
	SetOrderDeadline(ctx context.Context, input types.SetDeadlineInput) (*types.OrderProjection, error)
	AdvanceOrderStage(ctx context.Context, id int) (*types.OrderProjection, error)
	ClearCompletedOrders(ctx context.Context) (int, error)
	ListOrders(ctx context.Context) ([]*types.OrderProjection, error)
	FilterOrders(ctx context.Context, filter types.OrderFilter) error
	SearchOrders(ctx context.Context, filter types.OrderFilter) (*types.OrderListing, error)
	ClearOrderFilter(ctx context.Context) error
	OrderListSize(ctx context.Context) (int, error)
	ArchiveCompletedOrders(ctx context.Context) (int, error)
}
