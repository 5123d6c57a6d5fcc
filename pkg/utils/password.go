package utils

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 10

// HashPassword bcrypt 加盐哈希，同一明文每次结果不同
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
