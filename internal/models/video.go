package models

// Video — ролик с YouTube. PlaylistID может ссылаться на несуществующий
// плейлист, целостность ссылки не проверяется.
type Video struct {
	Meta
	Title       string  `json:"title"`
	Description *string `json:"description"`
	YoutubeID   string  `json:"youtubeId"`
	Duration    string  `json:"duration"`
	Thumbnail   string  `json:"thumbnail"`
	PlaylistID  *int    `json:"playlistId"`
}

// NewVideo — данные для создания видео.
type NewVideo struct {
	Title       string
	Description *string
	YoutubeID   string
	Duration    string
	Thumbnail   string
	PlaylistID  *int
}
