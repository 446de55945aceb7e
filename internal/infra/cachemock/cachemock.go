package cachemock

import (
	"context"

	"github.com/humanbelnik/filmorate/internal/model"
)

// PopularCache never holds anything. It stands in when redis is not configured.
type PopularCache struct{}

func New() *PopularCache {
	return &PopularCache{}
}

func (c *PopularCache) Load(ctx context.Context, count int) ([]*model.Film, int64, bool) {
	return nil, 0, false
}

func (c *PopularCache) Store(ctx context.Context, generation int64, count int, films []*model.Film) {}

func (c *PopularCache) Invalidate(ctx context.Context) {}
