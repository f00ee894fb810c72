// Package models содержит доменные структуры витрины курсов: пользователей,
// курсы, плейлисты, видео и подписки на рассылку, а также входные структуры
// для их создания.
package models

import "time"

// Meta — общая оболочка записи: идентификатор и время создания.
// Встраивается во все сущности, кроме Newsletter, у которой своё поле времени.
type Meta struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// Stamp проставляет идентификатор и время создания записи.
func (m *Meta) Stamp(id int, at time.Time) {
	m.ID = id
	m.CreatedAt = at
}
