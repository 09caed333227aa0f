package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"whatsapp:+91 98765-43210": "919876543210",
		"+919876543210":            "919876543210",
		"919876543210":             "919876543210",
		"(91) 98765 43210":         "919876543210",
		"tel:+1-555-0100":          "15550100",
		"website_user":             "",
		"":                         "",
	}

	for in, want := range cases {
		assert.Equal(t, want, NormalizePhone(in), in)
	}
}

func TestNormalizePhoneIsIdempotent(t *testing.T) {
	once := NormalizePhone("whatsapp:+91 98765 43210")
	assert.Equal(t, once, NormalizePhone(once))
}
