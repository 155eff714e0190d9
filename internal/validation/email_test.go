package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "A@Example.com", want: "a@example.com"},
		{in: "John.Doe+news@GMail.com", want: "johndoe@gmail.com"},
		{in: "john.doe@googlemail.com", want: "johndoe@gmail.com"},
		{in: "jane+work@outlook.com", want: "jane@outlook.com"},
		{in: "jane+work@icloud.com", want: "jane@icloud.com"},
		{in: "joe-list@yahoo.com", want: "joe@yahoo.com"},
		{in: "first.last+tag@example.org", want: "first.last+tag@example.org"},
		{in: "+only@gmail.com", want: "+only@gmail.com"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeEmail(tt.in))
		})
	}
}
