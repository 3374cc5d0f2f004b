package utils

import (
	"github.com/neimd2025/web-ndrop-sub000/core/constants"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// GenerateID returns a short random id for object keys and similar.
func GenerateID() string {
	id, err := gonanoid.Generate(idAlphabet, 10)
	if err != nil {
		return ""
	}
	return id
}

// GenerateEventCode returns a 6 character upper case alphanumeric join code.
func GenerateEventCode() (string, error) {
	return gonanoid.Generate(constants.EventCodeAlphabet, constants.EventCodeLength)
}

// IsValidEventCode reports whether code has the shape of an event code.
func IsValidEventCode(code string) bool {
	if len(code) != constants.EventCodeLength {
		return false
	}
	for _, r := range code {
		if !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}
