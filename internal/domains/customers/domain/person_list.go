package domain

import (
	"fmt"
	"strings"

	"github.com/Apurer/order-registry/internal/shared/collection"
	"github.com/Apurer/order-registry/internal/shared/domainerrors"
)

var (
	ErrDuplicatePerson = fmt.Errorf("%w: person already exists in the address book", domainerrors.ErrDuplicateEntity)
	ErrPersonNotFound  = fmt.Errorf("%w: person does not exist in the address book", domainerrors.ErrEntityNotFound)
)

// UniquePersonList holds distinct customers in insertion order.
type UniquePersonList struct {
	persons *collection.UniqueList[Person]
}

func NewUniquePersonList() *UniquePersonList {
	return &UniquePersonList{
		persons: collection.NewUniqueList(Person.IsSamePerson, ErrDuplicatePerson, ErrPersonNotFound),
	}
}

func (l *UniquePersonList) Add(p Person) error { return l.persons.Add(p) }

func (l *UniquePersonList) Delete(p Person) error { return l.persons.Delete(p) }

// Edit replaces target with replacement; the replacement may keep target's name but must not
// take another customer's.
func (l *UniquePersonList) Edit(target, replacement Person) error {
	return l.persons.Edit(target, replacement)
}

func (l *UniquePersonList) ReplaceAll(persons []Person) error { return l.persons.ReplaceAll(persons) }

func (l *UniquePersonList) Contains(p Person) bool { return l.persons.Contains(p) }

func (l *UniquePersonList) Get(i int) (Person, error) { return l.persons.Get(i) }

// Lookup returns the stored person sharing p's identity.
func (l *UniquePersonList) Lookup(p Person) (Person, bool) {
	return l.persons.Find(p.IsSamePerson)
}

// FindByName returns the person whose name matches exactly.
func (l *UniquePersonList) FindByName(name string) (Person, bool) {
	name = strings.TrimSpace(name)
	return l.persons.Find(func(p Person) bool { return p.name == name })
}

// FindByPhone returns the first person with the given phone number.
func (l *UniquePersonList) FindByPhone(phone string) (Person, bool) {
	phone = strings.TrimSpace(phone)
	return l.persons.Find(func(p Person) bool { return p.phone == phone })
}

func (l *UniquePersonList) Persons() []Person { return l.persons.Items() }

func (l *UniquePersonList) Len() int { return l.persons.Len() }
