package application

import (
	"slices"
	"strings"
	"time"

	catalog "github.com/Apurer/order-registry/internal/domains/catalog/domain"
	customers "github.com/Apurer/order-registry/internal/domains/customers/domain"
	orders "github.com/Apurer/order-registry/internal/domains/orders/domain"
	types "github.com/Apurer/order-registry/internal/domains/registry/application/types"
	"github.com/Apurer/order-registry/internal/shared/projection"
)

// containsWordIgnoreCase reports whether any keyword equals a whole word of text, ignoring case.
func containsWordIgnoreCase(text string, keywords []string) bool {
	words := strings.Fields(text)
	for _, kw := range keywords {
		if slices.ContainsFunc(words, func(w string) bool { return strings.EqualFold(w, kw) }) {
			return true
		}
	}
	return false
}

func cleanKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		out = append(out, strings.Fields(kw)...)
	}
	return out
}

func personPredicate(filter types.PersonFilter) projection.Predicate[customers.Person] {
	keywords := cleanKeywords(filter.Keywords)
	tag := strings.TrimSpace(filter.Tag)
	phone := strings.TrimSpace(filter.Phone)
	if len(keywords) == 0 && tag == "" && phone == "" {
		return nil
	}
	return func(p customers.Person) bool {
		if len(keywords) > 0 && !containsWordIgnoreCase(p.Name(), keywords) {
			return false
		}
		if phone != "" && p.Phone() != phone {
			return false
		}
		return tag == "" || p.HasTag(tag)
	}
}

// matching returns the items accepted by predicate; a nil predicate accepts everything.
func matching[T any](items []T, predicate projection.Predicate[T]) []T {
	if predicate == nil {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if predicate(item) {
			out = append(out, item)
		}
	}
	return out
}

func productPredicate(filter types.ProductFilter) projection.Predicate[catalog.Product] {
	keywords := cleanKeywords(filter.Keywords)
	if len(keywords) == 0 {
		return nil
	}
	return func(p catalog.Product) bool { return containsWordIgnoreCase(p.Name, keywords) }
}

func orderPredicate(filter types.OrderFilter, now func() time.Time, urgentDays int) (projection.Predicate[*orders.Order], error) {
	var stage orders.Stage
	if s := strings.TrimSpace(filter.Stage); s != "" {
		parsed, err := orders.ParseStage(s)
		if err != nil {
			return nil, err
		}
		stage = parsed
	}
	customer := strings.TrimSpace(filter.CustomerName)
	product := strings.TrimSpace(filter.Product)
	if stage == "" && customer == "" && product == "" && !filter.UrgentOnly {
		return nil, nil
	}
	return func(o *orders.Order) bool {
		if stage != "" && o.Stage() != stage {
			return false
		}
		if customer != "" && !strings.EqualFold(o.Customer().Name(), customer) {
			return false
		}
		if product != "" {
			if _, ok := o.QuantityOf(product); !ok {
				return false
			}
		}
		return !filter.UrgentOnly || o.IsUrgent(now(), urgentDays)
	}, nil
}
