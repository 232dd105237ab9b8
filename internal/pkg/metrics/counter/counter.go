package counter

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/gradfolio/storefront/internal/pkg/cache"
)

const templateViewsKey = "template:counters:views"

// AddTemplateView increments the view counter for a template in Redis
func AddTemplateView(templateID string) error {
	ctx := context.Background()
	return cache.GetClient().HIncrBy(ctx, templateViewsKey, templateID, 1).Err()
}

// TemplateViews returns the accumulated view count for a template.
// A missing field counts as zero views.
func TemplateViews(templateID string) (int64, error) {
	ctx := context.Background()
	val, err := cache.GetClient().HGet(ctx, templateViewsKey, templateID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}
