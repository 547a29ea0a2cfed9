package otp

import "github.com/xlzd/gotp"

// Generator creates short numeric one-time codes.
type Generator interface {
	RandomCode(length int) string
}

// GOTPGenerator generates codes from a fresh random TOTP secret, so every
// call yields an independent numeric code of the requested length.
type GOTPGenerator struct{}

func NewGOTPGenerator() *GOTPGenerator {
	return &GOTPGenerator{}
}

func (g *GOTPGenerator) RandomCode(length int) string {
	return gotp.NewTOTP(gotp.RandomSecret(16), length, 30, nil).Now()
}
