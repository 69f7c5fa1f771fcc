package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type passwordForm struct {
	Password string `validate:"required,strongpassword"`
}

func TestStrongPasswordRule(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"meets the policy", "C0rrect-horse-battery", true},
		{"too short", "Ab1!x", false},
		{"no uppercase", "sup3rsecret!pass", false},
		{"no lowercase", "SUP3RSECRET!PASS", false},
		{"no digit", "SuperSecret!Pass", false},
		{"no symbol", "Sup3rSecretPass1", false},
	}

	cv := NewCustomValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cv.Validate(&passwordForm{Password: tt.password})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
