package memory

import (
	"context"
	"fmt"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/course-storefront/internal/models"
)

func ptr[T any](v T) *T {
	return &v
}

var seedPlaylists = []models.NewPlaylist{
	{
		Title:       "Investing 101",
		Description: ptr("Essential investment concepts"),
		Icon:        "fas fa-dollar-sign",
		Gradient:    "from-green-500 to-yellow-500",
		TrackCount:  ptr(12),
	},
	{
		Title:       "Budgeting Beats",
		Description: ptr("Master your money management"),
		Icon:        "fas fa-piggy-bank",
		Gradient:    "from-yellow-500 to-orange-500",
		TrackCount:  ptr(8),
	},
	{
		Title:       "Crypto Chronicles",
		Description: ptr("Digital currency fundamentals"),
		Icon:        "fas fa-chart-pie",
		Gradient:    "from-purple-500 to-pink-500",
		TrackCount:  ptr(15),
	},
	{
		Title:       "Real Estate Rhythms",
		Description: ptr("Property investment strategies"),
		Icon:        "fas fa-building",
		Gradient:    "from-blue-500 to-cyan-500",
		TrackCount:  ptr(10),
	},
}

var seedCourses = []models.NewCourse{
	{
		Title:         "The Wealth Symphony",
		Description:   "Complete investment masterclass covering stocks, bonds, ETFs, and portfolio management strategies.",
		Instructor:    "Market Maestro Series",
		Price:         "99.00",
		OriginalPrice: ptr("199.00"),
		Duration:      "8 Hours",
		Level:         "Intermediate",
		Thumbnail:     "https://images.unsplash.com/photo-1611974789855-9c2a0a7236a3?ixlib=rb-4.0.3&auto=format&fit=crop&w=600&h=300",
		Rating:        ptr("4.90"),
		ReviewCount:   ptr(2300),
		IsPremium:     ptr(true),
	},
	{
		Title:         "Day Trading Drums",
		Description:   "Master the rhythm of day trading with technical analysis, risk management, and psychology.",
		Instructor:    "Trading Pro Academy",
		Price:         "149.00",
		OriginalPrice: ptr("299.00"),
		Duration:      "12 Hours",
		Level:         "Advanced",
		Thumbnail:     "https://images.unsplash.com/photo-1590283603385-17ffb3a7f29f?ixlib=rb-4.0.3&auto=format&fit=crop&w=600&h=300",
		Rating:        ptr("4.70"),
		ReviewCount:   ptr(1800),
		IsPremium:     ptr(true),
	},
	{
		Title:         "Startup Serenade",
		Description:   "From idea to IPO - complete guide to building and scaling your business venture.",
		Instructor:    "Entrepreneur Elite",
		Price:         "199.00",
		OriginalPrice: ptr("399.00"),
		Duration:      "15 Hours",
		Level:         "Advanced",
		Thumbnail:     "https://images.unsplash.com/photo-1556745757-8d76bdb6984b?ixlib=rb-4.0.3&auto=format&fit=crop&w=600&h=300",
		Rating:        ptr("4.80"),
		ReviewCount:   ptr(3100),
		IsPremium:     ptr(true),
	},
}

var seedVideos = []models.NewVideo{
	{
		Title:       "Stock Market Symphony",
		Description: ptr("Understanding market patterns and trends"),
		YoutubeID:   "dQw4w9WgXcQ",
		Duration:    "45 min",
		Thumbnail:   "https://images.unsplash.com/photo-1559526324-4b87b5e36e44?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300",
		PlaylistID:  ptr(1),
	},
	{
		Title:       "Crypto Bass Drop",
		Description: ptr("Digital currency fundamentals"),
		YoutubeID:   "dQw4w9WgXcQ",
		Duration:    "32 min",
		Thumbnail:   "https://images.unsplash.com/photo-1639762681485-074b7f938ba0?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300",
		PlaylistID:  ptr(3),
	},
	{
		Title:       "Budget Beats",
		Description: ptr("Master your monthly money flow"),
		YoutubeID:   "dQw4w9WgXcQ",
		Duration:    "28 min",
		Thumbnail:   "https://images.unsplash.com/photo-1554224155-6726b3ff858f?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300",
		PlaylistID:  ptr(2),
	},
	{
		Title:       "Property Progression",
		Description: ptr("Real estate investment essentials"),
		YoutubeID:   "dQw4w9WgXcQ",
		Duration:    "52 min",
		Thumbnail:   "https://images.unsplash.com/photo-1560518883-ce09059eeffa?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300",
		PlaylistID:  ptr(4),
	},
}

// Seed наполняет хранилище демонстрационным каталогом: плейлисты,
// затем курсы, затем видео. Вызывается один раз при старте.
func (s *Storage) Seed(ctx context.Context) error {
	return s.seed(ctx, seedPlaylists, seedCourses, seedVideos)
}

func (s *Storage) seed(ctx context.Context, playlists []models.NewPlaylist, courses []models.NewCourse, videos []models.NewVideo) error {
	const op = "storage.memory.Seed"

	// курсы проверяются до вставки, чтобы не оставить каталог наполовину заполненным
	validate := validator.New()
	for _, c := range courses {
		if err := validate.Struct(c); err != nil {
			return fmt.Errorf("%s: course %q: %w", op, c.Title, err)
		}
	}

	for _, p := range playlists {
		if _, err := s.CreatePlaylist(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	for _, c := range courses {
		if _, err := s.CreateCourse(ctx, c); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	for _, v := range videos {
		if _, err := s.CreateVideo(ctx, v); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}
