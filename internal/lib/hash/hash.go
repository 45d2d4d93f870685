package hash

import (
	"golang.org/x/crypto/bcrypt"
)

// Cost — фиксированная стоимость bcrypt для всех паролей
const Cost = 12

// Password хэширует пароль через bcrypt (соль добавляется автоматически)
func Password(plaintext string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plaintext), Cost)
}

// Compare сравнивает пароль с сохранённым хэшем,
// при несовпадении возвращает bcrypt.ErrMismatchedHashAndPassword
func Compare(hashed []byte, plaintext string) error {
	return bcrypt.CompareHashAndPassword(hashed, []byte(plaintext))
}
