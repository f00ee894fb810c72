package models

// Playlist — тематическая подборка видео в боковой панели.
type Playlist struct {
	Meta
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Icon        string  `json:"icon"`
	Gradient    string  `json:"gradient"`
	TrackCount  int     `json:"trackCount"`
}

// NewPlaylist — данные для создания плейлиста.
type NewPlaylist struct {
	Title       string
	Description *string
	Icon        string
	Gradient    string
	TrackCount  *int
}
