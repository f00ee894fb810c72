// Package storage объявляет ошибки, общие для всех реализаций хранилища
// витрины. Конкретные реализации лежат во вложенных пакетах.
package storage

import "errors"

var (
	// ErrNotFound возвращается, если запись с указанным идентификатором отсутствует.
	ErrNotFound = errors.New("record not found")
	// ErrUsernameExists возвращается при попытке создать пользователя с занятым именем.
	ErrUsernameExists = errors.New("username already exists")
	// ErrEmailExists возвращается, если email уже занят пользователем или подпиской.
	ErrEmailExists = errors.New("email already exists")
)
