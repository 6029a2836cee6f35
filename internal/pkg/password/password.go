package password

import (
	"golang.org/x/crypto/bcrypt"
)

// MinLength is the shortest password accepted at registration.
const MinLength = 8

var cost = bcrypt.DefaultCost + 2

// Hash hashes password using bcrypt
func Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// Verify compares password with hash
func Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// SetCostForTesting lowers the bcrypt cost so tests hashing passwords stay fast.
func SetCostForTesting() {
	cost = bcrypt.MinCost
}
