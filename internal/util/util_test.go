package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Jane", want: "J***"},
		{in: "j", want: "j***"},
		{in: "", want: "***"},
		{in: "Ägir", want: "Ä***"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MaskIdentifier(tt.in))
	}
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "alice@example.com", want: "a***@example.com"},
		{in: "bob@x.com", want: "b***@x.com"},
		{in: "not-an-email", want: "n***"},
		{in: "@nodomain", want: "@***"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MaskEmail(tt.in))
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Hello, World!", want: "hello-world"},
		{in: "  Spaces  everywhere  ", want: "spaces-everywhere"},
		{in: "CamelCase Title 2", want: "camelcase-title-2"},
		{in: "---", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in))
	}
}
