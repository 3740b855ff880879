package database

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

func randomInt(max int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(max)
}

// usernameBase creates a lowercase alphanumeric base from a user's name.
func usernameBase(name string) string {
	var result []byte
	for _, c := range strings.ToLower(name) {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			result = append(result, byte(c))
		}
	}
	if len(result) == 0 {
		return "user"
	}
	if len(result) > 12 {
		result = result[:12]
	}
	return string(result)
}

// GenerateUsername appends four random digits to a name-derived base.
// Uniqueness is left to the users_username_key constraint.
func GenerateUsername(name string) string {
	return fmt.Sprintf("%s%04d", usernameBase(name), randomInt(10000))
}
