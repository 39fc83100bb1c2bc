package utils

import (
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a password peppered with the application secret.
func HashPassword(password string) (string, error) {
	secret := viper.GetString("JWT_SECRET")
	bytes, err := bcrypt.GenerateFromPassword([]byte(password+secret), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash verifies a password against its stored hash.
func CheckPasswordHash(password, hash string) bool {
	secret := viper.GetString("JWT_SECRET")
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password+secret)) == nil
}
