package models

// Course — платный курс каталога. Денежные значения и рейтинг хранятся
// десятичными строками ("99.00"), как их отдаёт API.
type Course struct {
	Meta
	Title         string `json:"title"`
	Description   string `json:"description"`
	Instructor    string `json:"instructor"`
	Price         string `json:"price"`
	OriginalPrice string `json:"originalPrice"`
	Duration      string `json:"duration"`
	Level         string `json:"level"`
	Thumbnail     string `json:"thumbnail"`
	Rating        string `json:"rating"`
	ReviewCount   int    `json:"reviewCount"`
	IsPremium     bool   `json:"isPremium"`
}

// NewCourse — данные для создания курса. Необязательные поля равны nil,
// если не переданы; хранилище подставляет значения по умолчанию.
type NewCourse struct {
	Title         string  `json:"title" validate:"required"`
	Description   string  `json:"description" validate:"required"`
	Instructor    string  `json:"instructor" validate:"required"`
	Price         string  `json:"price" validate:"required,numeric"`
	OriginalPrice *string `json:"originalPrice,omitempty" validate:"omitempty,numeric"`
	Duration      string  `json:"duration" validate:"required"`
	Level         string  `json:"level" validate:"required,oneof=Beginner Intermediate Advanced"`
	Thumbnail     string  `json:"thumbnail" validate:"required"`
	Rating        *string `json:"rating,omitempty" validate:"omitempty,numeric"`
	ReviewCount   *int    `json:"reviewCount,omitempty"`
	IsPremium     *bool   `json:"isPremium,omitempty"`
}
