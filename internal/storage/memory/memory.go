// Package memory реализует хранилище витрины курсов в памяти процесса.
// Данные и счётчики идентификаторов теряются при перезапуске.
//
// Storage — единственный владелец записей: все чтения и вставки идут через
// его методы под общим RWMutex. Уникальность имени пользователя и email
// проверяется внутри той же критической секции, что и вставка.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/magabrotheeeer/course-storefront/internal/models"
	"github.com/magabrotheeeer/course-storefront/internal/storage"
)

const (
	defaultOriginalPrice = "0"
	defaultRating        = "0"
)

// Storage хранит пользователей, курсы, плейлисты, видео и подписки.
type Storage struct {
	mu          sync.RWMutex
	users       *table[models.User, *models.User]
	courses     *table[models.Course, *models.Course]
	playlists   *table[models.Playlist, *models.Playlist]
	videos      *table[models.Video, *models.Video]
	newsletters *table[models.Newsletter, *models.Newsletter]
	now         func() time.Time
}

// New создаёт пустое хранилище.
func New() *Storage {
	return &Storage{
		users:       newTable[models.User](),
		courses:     newTable[models.Course](),
		playlists:   newTable[models.Playlist](),
		videos:      newTable[models.Video](),
		newsletters: newTable[models.Newsletter](),
		now:         time.Now,
	}
}

func checkCtx(ctx context.Context, op string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
		return nil
	}
}

// ===== USERS =====

// GetUser возвращает пользователя по ID.
func (s *Storage) GetUser(ctx context.Context, id int) (*models.User, error) {
	const op = "storage.memory.GetUser"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users.get(id)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return &u, nil
}

// GetUserByUsername ищет пользователя по точному совпадению имени.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.memory.GetUserByUsername"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users.find(func(u models.User) bool { return u.Username == username })
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return &u, nil
}

// GetUserByEmail ищет пользователя по точному совпадению email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.memory.GetUserByEmail"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users.find(func(u models.User) bool { return u.Email == email })
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return &u, nil
}

// CreateUser сохраняет пользователя. Если имя или email уже заняты,
// возвращает storage.ErrUsernameExists или storage.ErrEmailExists и ничего не пишет.
// Имя проверяется раньше email.
func (s *Storage) CreateUser(ctx context.Context, in models.NewUser) (*models.User, error) {
	const op = "storage.memory.CreateUser"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.users.find(func(u models.User) bool { return u.Username == in.Username }); taken {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrUsernameExists)
	}
	if _, taken := s.users.find(func(u models.User) bool { return u.Email == in.Email }); taken {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrEmailExists)
	}

	u := s.users.insert(models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
	}, s.now())
	return &u, nil
}

// ===== COURSES =====

// ListCourses возвращает все курсы в порядке добавления.
func (s *Storage) ListCourses(ctx context.Context) ([]models.Course, error) {
	const op = "storage.memory.ListCourses"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.courses.all(), nil
}

// GetCourse возвращает курс по ID.
func (s *Storage) GetCourse(ctx context.Context, id int) (*models.Course, error) {
	const op = "storage.memory.GetCourse"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.courses.get(id)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return &c, nil
}

// CreateCourse сохраняет курс, подставляя значения по умолчанию
// для незаполненных необязательных полей.
func (s *Storage) CreateCourse(ctx context.Context, in models.NewCourse) (*models.Course, error) {
	const op = "storage.memory.CreateCourse"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	c := models.Course{
		Title:         in.Title,
		Description:   in.Description,
		Instructor:    in.Instructor,
		Price:         in.Price,
		OriginalPrice: defaultOriginalPrice,
		Duration:      in.Duration,
		Level:         in.Level,
		Thumbnail:     in.Thumbnail,
		Rating:        defaultRating,
	}
	if in.OriginalPrice != nil {
		c.OriginalPrice = *in.OriginalPrice
	}
	if in.Rating != nil {
		c.Rating = *in.Rating
	}
	if in.ReviewCount != nil {
		c.ReviewCount = *in.ReviewCount
	}
	if in.IsPremium != nil {
		c.IsPremium = *in.IsPremium
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c = s.courses.insert(c, s.now())
	return &c, nil
}

// ===== PLAYLISTS =====

// ListPlaylists возвращает все плейлисты в порядке добавления.
func (s *Storage) ListPlaylists(ctx context.Context) ([]models.Playlist, error) {
	const op = "storage.memory.ListPlaylists"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.playlists.all(), nil
}

// GetPlaylist возвращает плейлист по ID.
func (s *Storage) GetPlaylist(ctx context.Context, id int) (*models.Playlist, error) {
	const op = "storage.memory.GetPlaylist"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.playlists.get(id)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return &p, nil
}

// CreatePlaylist сохраняет плейлист. TrackCount по умолчанию равен 0.
func (s *Storage) CreatePlaylist(ctx context.Context, in models.NewPlaylist) (*models.Playlist, error) {
	const op = "storage.memory.CreatePlaylist"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	p := models.Playlist{
		Title:       in.Title,
		Description: in.Description,
		Icon:        in.Icon,
		Gradient:    in.Gradient,
	}
	if in.TrackCount != nil {
		p.TrackCount = *in.TrackCount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p = s.playlists.insert(p, s.now())
	return &p, nil
}

// ===== VIDEOS =====

// ListVideos возвращает все видео в порядке добавления.
func (s *Storage) ListVideos(ctx context.Context) ([]models.Video, error) {
	const op = "storage.memory.ListVideos"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.videos.all(), nil
}

// GetVideosByPlaylist возвращает видео, у которых PlaylistID равен playlistID.
// Для неизвестного плейлиста возвращается пустой срез, а не ошибка.
func (s *Storage) GetVideosByPlaylist(ctx context.Context, playlistID int) ([]models.Video, error) {
	const op = "storage.memory.GetVideosByPlaylist"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.videos.filter(func(v models.Video) bool {
		return v.PlaylistID != nil && *v.PlaylistID == playlistID
	}), nil
}

// CreateVideo сохраняет видео. Существование плейлиста не проверяется.
func (s *Storage) CreateVideo(ctx context.Context, in models.NewVideo) (*models.Video, error) {
	const op = "storage.memory.CreateVideo"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.videos.insert(models.Video{
		Title:       in.Title,
		Description: in.Description,
		YoutubeID:   in.YoutubeID,
		Duration:    in.Duration,
		Thumbnail:   in.Thumbnail,
		PlaylistID:  in.PlaylistID,
	}, s.now())
	return &v, nil
}

// ===== NEWSLETTER =====

// SubscribeNewsletter оформляет подписку на рассылку.
// Повторная подписка того же email возвращает storage.ErrEmailExists.
func (s *Storage) SubscribeNewsletter(ctx context.Context, in models.NewNewsletter) (*models.Newsletter, error) {
	const op = "storage.memory.SubscribeNewsletter"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.newsletters.find(func(n models.Newsletter) bool { return n.Email == in.Email }); taken {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrEmailExists)
	}

	n := s.newsletters.insert(models.Newsletter{Email: in.Email}, s.now())
	return &n, nil
}

// ListNewsletters возвращает все подписки в порядке оформления.
func (s *Storage) ListNewsletters(ctx context.Context) ([]models.Newsletter, error) {
	const op = "storage.memory.ListNewsletters"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.newsletters.all(), nil
}
