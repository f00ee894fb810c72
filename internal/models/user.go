package models

// User представляет зарегистрированного пользователя.
// Хэш пароля никогда не попадает в JSON.
type User struct {
	Meta
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// NewUser — данные для создания пользователя. Пароль уже захэширован.
type NewUser struct {
	Username     string
	Email        string
	PasswordHash string
}
