package models

import (
	"strings"
	"unicode/utf8"

	itemdomain "github.com/ghuser/itemboard/services/item/domain"
)

// ItemName is a value object holding a caller-supplied item name exactly as
// submitted. Surrounding whitespace is preserved; only the trimmed form must
// be non-empty.
type ItemName string

// NewItemName constructs a valid ItemName or returns a *domain.ValidationError.
func NewItemName(s string) (ItemName, error) {
	if strings.TrimSpace(s) == "" {
		return "", itemdomain.ErrNameRequired
	}
	if utf8.RuneCountInString(s) > itemdomain.MaxNameLength {
		return "", itemdomain.ErrNameTooLong
	}
	return ItemName(s), nil
}

// String returns the underlying string value.
func (n ItemName) String() string {
	return string(n)
}
