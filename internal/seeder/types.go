package seeder

import (
	"time"

	"github.com/Rana718/retailgen/internal/distribution"
)

// Profile is the person behind a customer record. It never reaches the sink;
// duplicates are derived from it.
type Profile struct {
	Country   int // index into the distribution model
	Name      string
	Surname   string
	BirthDate time.Time
}

type Customer struct {
	CustomerID string
	Country    *string
	Name       string
	Surname    string
	BirthDate  *string
	Email      *string
	Phone      *string
	SourceID   int
	Profile    Profile
}

func (c *Customer) HasContact() bool {
	return c.Email != nil || c.Phone != nil
}

func (c *Customer) Row() []any {
	return []any{
		c.CustomerID,
		nullable(c.Country),
		c.Name,
		c.Surname,
		nullable(c.BirthDate),
		nullable(c.Email),
		nullable(c.Phone),
		c.SourceID,
	}
}

type Order struct {
	OrderID    string
	CustomerID string
	Country    int
	OrderDate  time.Time
	SourceID   int
}

func (o *Order) Row() []any {
	return []any{o.OrderID, o.CustomerID, o.SourceID, o.OrderDate}
}

type Transaction struct {
	TransactionID int64
	OrderID       string
	Product       string
	Quantity      int
	UnitPrice     distribution.Cents
	TotalAmount   distribution.Cents
}

func (t *Transaction) Row() []any {
	return []any{t.TransactionID, t.OrderID, t.Product, t.Quantity, t.UnitPrice, t.TotalAmount}
}

// DuplicateKind tells how a duplicate customer matches its primary.
type DuplicateKind int

const (
	ExactContact DuplicateKind = iota + 1
	FuzzyName
)

func (k DuplicateKind) String() string {
	switch k {
	case ExactContact:
		return "exact_contact"
	case FuzzyName:
		return "fuzzy_name"
	default:
		return "unknown"
	}
}

type DuplicateLink struct {
	PrimaryID   string
	DuplicateID string
	Kind        DuplicateKind
}

func (l *DuplicateLink) Row() []any {
	return []any{l.PrimaryID, l.DuplicateID, l.Kind.String()}
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func ptr(s string) *string {
	return &s
}
