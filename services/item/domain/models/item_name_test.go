package models

import (
	"errors"
	"strings"
	"testing"

	itemdomain "github.com/ghuser/itemboard/services/item/domain"
)

func TestNewItemName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"single character", "a", nil},
		{"normal name", "Test Item", nil},
		{"surrounding whitespace kept", "  padded  ", nil},
		{"255 characters", strings.Repeat("x", 255), nil},
		{"255 multibyte runes", strings.Repeat("é", 255), nil},
		{"empty", "", itemdomain.ErrNameRequired},
		{"spaces only", "   ", itemdomain.ErrNameRequired},
		{"tabs and newlines only", "\t\n", itemdomain.ErrNameRequired},
		{"256 characters", strings.Repeat("x", 256), itemdomain.ErrNameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewItemName(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n.String() != tt.input {
				t.Fatalf("expected %q to be kept verbatim, got %q", tt.input, n.String())
			}
		})
	}
}
