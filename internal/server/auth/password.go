package auth

import "golang.org/x/crypto/bcrypt"

// HashCost is the bcrypt cost factor. It is deliberately fixed: raising it
// per-call would let a caller trade security for throughput.
const HashCost = 10

// HashPassword derives a salted bcrypt hash from a plaintext password.
// The salt is generated per call and embedded in the returned hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
// bcrypt performs the comparison in constant time.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
