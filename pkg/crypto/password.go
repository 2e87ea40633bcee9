package crypto

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a plaintext password using bcrypt at the default
// cost (10).
func HashPassword(plain string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
}

// ComparePassword compares a plaintext password against a stored hash.
func ComparePassword(hash []byte, plain string) error {
	return bcrypt.CompareHashAndPassword(hash, []byte(plain))
}
