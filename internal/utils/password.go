package utils

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost = 12
	// MaxPasswordBytes — предел bcrypt, более длинный пароль он не хеширует.
	MaxPasswordBytes = 72
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

var dummyHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("apiforge-dummy-password"), bcryptCost)
	if err != nil {
		panic(err)
	}
	return h
})

// CheckDummyPassword сравнивает пароль с заранее посчитанным хешем и всегда
// возвращает false. По времени ответа вход с неизвестным email не отличить
// от входа с неверным паролем.
func CheckDummyPassword(password string) bool {
	_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
	return false
}
