package auth

import "golang.org/x/crypto/bcrypt"

// hashCost matches the work factor the existing account digests were created with.
const hashCost = 12

// HashPassword hashes a plaintext password with bcrypt. Only the digest is
// ever persisted.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether plaintext matches the stored digest.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
