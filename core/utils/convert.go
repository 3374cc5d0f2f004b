package utils

import (
	"strconv"

	"github.com/google/uuid"
)

// ToUUID parses s and returns uuid.Nil when it is not a uuid.
func ToUUID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func ToNumberWithDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
