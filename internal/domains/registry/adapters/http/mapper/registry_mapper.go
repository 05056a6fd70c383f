package mapper

import (
	"github.com/shopspring/decimal"

	catalog "github.com/Apurer/order-registry/internal/domains/catalog/domain"
	customers "github.com/Apurer/order-registry/internal/domains/customers/domain"
	types "github.com/Apurer/order-registry/internal/domains/registry/application/types"
)

// Person is the HTTP representation of a customer.
type Person struct {
	Name    string   `json:"name"`
	Phone   string   `json:"phone"`
	Email   string   `json:"email,omitempty"`
	Address string   `json:"address,omitempty"`
	Remark  string   `json:"remark,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// Product is the HTTP representation of a menu entry. Amounts are accepted as strings so
// the client controls precision.
type Product struct {
	Name  string `json:"name"`
	Cost  string `json:"cost,omitempty"`
	Price string `json:"price,omitempty"`
}

// ProductView is the menu entry returned to clients.
type ProductView struct {
	Name  string          `json:"name"`
	Cost  decimal.Decimal `json:"cost"`
	Price decimal.Decimal `json:"price"`
}

// ToPersonInput maps a transport Person into the application input.
func ToPersonInput(p Person) types.PersonInput {
	return types.PersonInput{
		Name:    p.Name,
		Phone:   p.Phone,
		Email:   p.Email,
		Address: p.Address,
		Remark:  p.Remark,
		Tags:    p.Tags,
	}
}

// FromPerson maps a domain customer to its transport form.
func FromPerson(p customers.Person) Person {
	return Person{
		Name:    p.Name(),
		Phone:   p.Phone(),
		Email:   p.Email(),
		Address: p.Address(),
		Remark:  p.Remark(),
		Tags:    p.Tags(),
	}
}

func FromPersons(list []customers.Person) []Person {
	result := make([]Person, 0, len(list))
	for _, p := range list {
		result = append(result, FromPerson(p))
	}
	return result
}

// ToProductInput maps a transport Product into the application input.
func ToProductInput(p Product) types.ProductInput {
	return types.ProductInput{Name: p.Name, Cost: p.Cost, Price: p.Price}
}

func FromProduct(p catalog.Product) ProductView {
	return ProductView{Name: p.Name, Cost: p.Cost, Price: p.Price}
}

func FromProducts(list []catalog.Product) []ProductView {
	result := make([]ProductView, 0, len(list))
	for _, p := range list {
		result = append(result, FromProduct(p))
	}
	return result
}
