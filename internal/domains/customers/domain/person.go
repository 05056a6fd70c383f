package domain

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/Apurer/order-registry/internal/shared/domainerrors"
)

var (
	ErrInvalidName    = fmt.Errorf("%w: names should only contain alphanumeric characters and spaces, and it should not be blank", domainerrors.ErrInvalidField)
	ErrInvalidPhone   = fmt.Errorf("%w: phone numbers should only contain digits, and be at least 3 digits long", domainerrors.ErrInvalidField)
	ErrInvalidEmail   = fmt.Errorf("%w: emails should be of the format local-part@domain", domainerrors.ErrInvalidField)
	ErrInvalidTagName = fmt.Errorf("%w: tag names should be alphanumeric", domainerrors.ErrInvalidField)
)

var (
	namePattern  = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ]*$`)
	phonePattern = regexp.MustCompile(`^\d{3,}$`)
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9]([+_.\-]?[A-Za-z0-9])*@([A-Za-z0-9]([A-Za-z0-9\-]*[A-Za-z0-9])?\.)*[A-Za-z0-9]([A-Za-z0-9\-]*[A-Za-z0-9])?$`)
	tagPattern   = regexp.MustCompile(`^[\p{L}\p{N}]+$`)
)

// Person is a customer record. It is immutable: edits produce a replacement value.
// Two persons are the same customer when their names match.
type Person struct {
	name    string
	phone   string
	email   string
	address string
	remark  string
	tags    []string
}

// NewPerson validates every field. Email and address are optional; remark is free text.
func NewPerson(name, phone, email, address, remark string, tags []string) (Person, error) {
	p := Person{
		name:    strings.TrimSpace(name),
		phone:   strings.TrimSpace(phone),
		email:   strings.TrimSpace(email),
		address: strings.TrimSpace(address),
		remark:  remark,
	}
	if !namePattern.MatchString(p.name) {
		return Person{}, ErrInvalidName
	}
	if !phonePattern.MatchString(p.phone) {
		return Person{}, ErrInvalidPhone
	}
	if p.email != "" && !emailPattern.MatchString(p.email) {
		return Person{}, ErrInvalidEmail
	}
	normalized, err := normalizeTags(tags)
	if err != nil {
		return Person{}, err
	}
	p.tags = normalized
	return p, nil
}

func normalizeTags(tags []string) ([]string, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if !tagPattern.MatchString(tag) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTagName, tag)
		}
		out = append(out, tag)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

func (p Person) Name() string    { return p.name }
func (p Person) Phone() string   { return p.phone }
func (p Person) Email() string   { return p.email }
func (p Person) Address() string { return p.address }
func (p Person) Remark() string  { return p.remark }

// Tags returns the tag set in sorted order.
func (p Person) Tags() []string {
	return slices.Clone(p.tags)
}

// HasTag reports set membership.
func (p Person) HasTag(tag string) bool {
	_, found := slices.BinarySearch(p.tags, tag)
	return found
}

// WithRemark returns a copy carrying a new remark.
func (p Person) WithRemark(remark string) Person {
	p.tags = slices.Clone(p.tags)
	p.remark = remark
	return p
}

// IsZero reports whether p was never constructed.
func (p Person) IsZero() bool {
	return p.name == ""
}

// IsSamePerson is the identity rule used for duplicate detection.
func (p Person) IsSamePerson(other Person) bool {
	return p.name == other.name
}

// Equal compares every field; tags compare as sets.
func (p Person) Equal(other Person) bool {
	return p.name == other.name &&
		p.phone == other.phone &&
		p.email == other.email &&
		p.address == other.address &&
		p.remark == other.remark &&
		slices.Equal(p.tags, other.tags)
}

func (p Person) String() string {
	return fmt.Sprintf("%s; Phone: %s; Email: %s; Address: %s; Remark: %s; Tags: %s",
		p.name, p.phone, p.email, p.address, p.remark, strings.Join(p.tags, ", "))
}
