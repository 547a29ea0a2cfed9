package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGOTPGeneratorRandomCode(t *testing.T) {
	generator := NewGOTPGenerator()

	for _, length := range []int{4, 6, 8} {
		code := generator.RandomCode(length)
		assert.Len(t, code, length)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9', "code %q contains non-digit %q", code, c)
		}
	}
}
