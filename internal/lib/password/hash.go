// Package password хэширует пароли пользователей витрины через bcrypt.
// Хэш хранится вместо пароля и никогда не попадает в ответы API.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost — стоимость bcrypt, с которой хэшируются все пароли.
const Cost = 10

// GetHash возвращает bcrypt-хэш пароля. Пароли длиннее 72 байт bcrypt не принимает.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// CompareHash возвращает nil, если password соответствует hash.
// При несовпадении ошибка оборачивает bcrypt.ErrMismatchedHashAndPassword.
func CompareHash(hash, password string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
