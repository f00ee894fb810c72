package models

import "time"

// Newsletter — подписка на рассылку.
type Newsletter struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribedAt"`
}

// Stamp проставляет идентификатор и время подписки.
func (n *Newsletter) Stamp(id int, at time.Time) {
	n.ID = id
	n.SubscribedAt = at
}

// NewNewsletter — данные для оформления подписки.
type NewNewsletter struct {
	Email string
}
