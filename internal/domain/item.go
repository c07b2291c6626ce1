package domain

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ItemStatus represents the processing state of an item
type ItemStatus string

// Possible item status values
const (
	ItemStatusNew       ItemStatus = "NEW"
	ItemStatusProcessed ItemStatus = "PROCESSED"
)

// validate is shared by all Item validations; validator.Validate is safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Item is a record owned by the item store. ID is assigned by the store on
// first save and never changes afterwards.
type Item struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      ItemStatus `json:"status" validate:"required,oneof=NEW PROCESSED"`
	Email       string     `json:"email" validate:"omitempty,email"`
}

// NewItem creates an unsaved item in the NEW state.
func NewItem(name, description, email string) (*Item, error) {
	item := &Item{
		Name:        name,
		Description: description,
		Status:      ItemStatusNew,
		Email:       email,
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks the item's status and email fields.
// Name and description are opaque and never rejected.
func (i *Item) Validate() error {
	err := validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	fe := fieldErrs[0]
	switch fe.Field() {
	case "Status":
		return NewValidationError("status", fmt.Sprintf("%q is not a valid status", i.Status), ErrInvalidItemStatus)
	case "Email":
		return NewValidationError("email", "has invalid format", ErrInvalidEmail)
	default:
		return NewValidationError(fe.Field(), "failed on the '"+fe.Tag()+"' tag", ErrValidation)
	}
}

// MarkProcessed sets the item's status to PROCESSED.
func (i *Item) MarkProcessed() {
	i.Status = ItemStatusProcessed
}

// Clone returns a copy of the item so callers can mutate it without
// affecting a value shared with the store.
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}
