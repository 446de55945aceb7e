package infra_redis_popular

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-redis/redis"
	"github.com/goccy/go-json"
	"github.com/humanbelnik/filmorate/internal/metrics"
	"github.com/humanbelnik/filmorate/internal/model"
)

// Driver caches popular film lists in one redis hash per cache generation,
// keyed by list size. Invalidate bumps the generation, so a list computed
// before the bump lands in a hash nobody reads and expires with its TTL.
type Driver struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	logger *slog.Logger
}

type Option func(*Driver)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

func New(
	client *redis.Client,
	key string,
	ttl time.Duration,
	opts ...Option,
) *Driver {
	d := &Driver{
		client: client,
		key:    key,
		ttl:    ttl,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Load reports a negative generation when the current one could not be read.
// Store ignores such lists.
func (d *Driver) Load(ctx context.Context, count int) ([]*model.Film, int64, bool) {
	client := d.client.WithContext(ctx)

	generation, err := client.Get(d.generationKey()).Int64()
	switch {
	case err == redis.Nil:
		generation = 0
	case err != nil:
		d.logger.Warn("popular cache generation read failed", slog.String("error", err.Error()))
		metrics.RecordCacheMiss()
		return nil, -1, false
	}

	raw, err := client.HGet(d.entriesKey(generation), strconv.Itoa(count)).Bytes()
	if err != nil {
		if err != redis.Nil {
			d.logger.Warn("popular cache read failed", slog.String("error", err.Error()))
		}
		metrics.RecordCacheMiss()
		return nil, generation, false
	}

	films, err := decode(raw)
	if err != nil {
		d.logger.Warn("popular cache entry is corrupted", slog.String("error", err.Error()))
		metrics.RecordCacheMiss()
		return nil, generation, false
	}

	metrics.RecordCacheHit()
	return films, generation, true
}

func (d *Driver) Store(ctx context.Context, generation int64, count int, films []*model.Film) {
	if generation < 0 {
		return
	}

	raw, err := encode(films)
	if err != nil {
		d.logger.Warn("failed to encode popular films", slog.String("error", err.Error()))
		return
	}

	key := d.entriesKey(generation)
	pipe := d.client.WithContext(ctx).TxPipeline()
	pipe.HSet(key, strconv.Itoa(count), raw)
	pipe.Expire(key, d.ttl)
	if _, err := pipe.Exec(); err != nil {
		d.logger.Warn("popular cache write failed", slog.String("error", err.Error()))
	}
}

func (d *Driver) Invalidate(ctx context.Context) {
	client := d.client.WithContext(ctx)

	generation, err := client.Incr(d.generationKey()).Result()
	if err != nil {
		d.logger.Warn("popular cache invalidation failed", slog.String("error", err.Error()))
		return
	}
	if err := client.Del(d.entriesKey(generation - 1)).Err(); err != nil {
		d.logger.Warn("failed to drop stale popular lists", slog.String("error", err.Error()))
	}
}

func (d *Driver) generationKey() string {
	return d.key + ":gen"
}

func (d *Driver) entriesKey(generation int64) string {
	return d.key + ":" + strconv.FormatInt(generation, 10)
}

type cachedFilm struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	ReleaseDate time.Time     `json:"release_date"`
	Duration    int           `json:"duration"`
	Mpa         model.Mpa     `json:"mpa"`
	Genres      []model.Genre `json:"genres"`
	Likes       int           `json:"likes"`
}

func encode(films []*model.Film) ([]byte, error) {
	entries := make([]cachedFilm, len(films))
	for i, f := range films {
		entries[i] = cachedFilm{
			ID:          f.ID,
			Name:        f.Name,
			Description: f.Description,
			ReleaseDate: f.ReleaseDate,
			Duration:    f.Duration,
			Mpa:         f.Mpa,
			Genres:      f.Genres,
			Likes:       f.Likes,
		}
	}
	return json.Marshal(entries)
}

func decode(raw []byte) ([]*model.Film, error) {
	var entries []cachedFilm
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}

	films := make([]*model.Film, len(entries))
	for i, e := range entries {
		films[i] = &model.Film{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			ReleaseDate: e.ReleaseDate,
			Duration:    e.Duration,
			Mpa:         e.Mpa,
			Genres:      e.Genres,
			Likes:       e.Likes,
		}
	}
	return films, nil
}
