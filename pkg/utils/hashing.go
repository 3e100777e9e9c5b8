package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashSecret bcrypt-hashes an API key so only the hash needs to live in
// the environment (API_KEY_HASH).
func HashSecret(secret string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(secret), 10)
	return string(bytes), err
}

func CompareSecret(hashedSecret string, plainSecret string) error {

	return bcrypt.CompareHashAndPassword([]byte(hashedSecret), []byte(plainSecret))

}
