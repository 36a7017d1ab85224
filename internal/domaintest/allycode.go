package domaintest

import (
	"fmt"
	"math/rand/v2"
)

// NewAllyCode returns a random normalized nine digit ally code
func NewAllyCode() string {
	return fmt.Sprintf("%09d", rand.IntN(1_000_000_000))
}
