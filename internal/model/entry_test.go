package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{
			name: "full 10 digit code",
			code: "8544422000",
			want: "8544.42.20.00",
		},
		{
			name: "already dotted code",
			code: "8544.42.20.00",
			want: "8544.42.20.00",
		},
		{
			name: "six digit code",
			code: "854442",
			want: "8544.42",
		},
		{
			name: "eight digit code",
			code: "85444220",
			want: "8544.42.20",
		},
		{
			name: "heading only stays unformatted",
			code: "8544",
			want: "8544",
		},
		{
			name: "empty code",
			code: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCode(tt.code))
		})
	}
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "8544422000", DigitsOnly("8544.42.20.00"))
	assert.Equal(t, "9018", DigitsOnly("9018"))
	assert.Equal(t, "", DigitsOnly("abc"))
}

func TestHeading(t *testing.T) {
	entry := CatalogEntry{Code: "8544.42.20.00"}
	assert.Equal(t, "8544", entry.Heading())

	short := CatalogEntry{Code: "85"}
	assert.Equal(t, "85", short.Heading())
}

func TestCatalogEntryValidate(t *testing.T) {
	tests := []struct {
		name    string
		entry   CatalogEntry
		wantErr bool
	}{
		{
			name:    "valid entry",
			entry:   CatalogEntry{Code: "8544422000", Description: "Insulated wire", Chapter: 85},
			wantErr: false,
		},
		{
			name:    "missing code",
			entry:   CatalogEntry{Description: "Insulated wire", Chapter: 85},
			wantErr: true,
		},
		{
			name:    "missing description",
			entry:   CatalogEntry{Code: "8544422000", Chapter: 85},
			wantErr: true,
		},
		{
			name:    "chapter out of range",
			entry:   CatalogEntry{Code: "8544422000", Description: "Insulated wire", Chapter: 100},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
