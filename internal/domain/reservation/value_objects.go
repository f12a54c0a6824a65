package reservation

import (
	"strings"

	"court-booking/internal/domain/user"
	"court-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNegativeAmount    = errs.New("amount cannot be negative")
	ErrOwnerRequired     = errs.New("owner requires a user id or guest name and phone")
	ErrInvalidGuestMail  = errs.New("invalid guest email")
	ErrInvalidGuestPhone = errs.New("invalid guest phone")
	ErrInvalidCategory   = errs.New("invalid category")
)

// Money is an amount in minor currency units.
type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, invalid(ErrNegativeAmount)
	}
	return Money{cents: cents}, nil
}

func MustMoney(cents int64) Money {
	m, err := NewMoney(cents)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

type Category string

func NewCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c == "" {
		return "", invalid(ErrInvalidCategory)
	}
	return c, nil
}

func (c Category) String() string {
	return string(c)
}

// Owner is either a registered user or a guest contact. Registered users may
// also carry contact details copied from their identity.
type Owner struct {
	UserID *uuid.UUID
	Name   string
	Phone  string
	Email  string
}

func NewUserOwner(identity user.Identity) Owner {
	id := identity.ID
	return Owner{
		UserID: &id,
		Name:   identity.Name,
		Email:  identity.Email,
	}
}

func NewGuestOwner(name, phone, email string) (Owner, error) {
	o := Owner{
		Name:  strings.TrimSpace(name),
		Phone: strings.TrimSpace(phone),
		Email: strings.TrimSpace(email),
	}
	if p, err := user.NewPhone(o.Phone); err == nil {
		o.Phone = p.Value()
	}
	if err := o.Validate(); err != nil {
		return Owner{}, err
	}
	return o, nil
}

func (o Owner) IsGuest() bool {
	return o.UserID == nil
}

func (o Owner) Validate() error {
	if o.UserID != nil && *o.UserID != uuid.Nil {
		return nil
	}
	if o.Name == "" || o.Phone == "" {
		return invalid(ErrOwnerRequired)
	}
	if _, err := user.NewPhone(o.Phone); err != nil {
		return invalid(ErrInvalidGuestPhone)
	}
	if o.Email != "" {
		if _, err := user.NewEmail(o.Email); err != nil {
			return invalid(ErrInvalidGuestMail)
		}
	}
	return nil
}

func invalid(err error) error {
	return errs.Mark(err, errs.ErrValidation)
}
