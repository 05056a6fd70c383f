package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Apurer/order-registry/internal/shared/domainerrors"
)

var ErrInvalidQuantity = fmt.Errorf("%w: quantity must be a non-negative integer", domainerrors.ErrInvalidField)

// Quantity is a non-negative item count.
type Quantity struct {
	value int
}

// NewQuantity rejects negative counts.
func NewQuantity(value int) (Quantity, error) {
	if value < 0 {
		return Quantity{}, ErrInvalidQuantity
	}
	return Quantity{value: value}, nil
}

// ParseQuantity reads a decimal integer.
func ParseQuantity(raw string) (Quantity, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return Quantity{}, fmt.Errorf("%w: %q", ErrInvalidQuantity, raw)
	}
	return NewQuantity(value)
}

func (q Quantity) Value() int   { return q.value }
func (q Quantity) IsZero() bool { return q.value == 0 }

func (q Quantity) String() string { return strconv.Itoa(q.value) }
