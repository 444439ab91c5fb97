package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/nguyentantai21042004/transcript-flow/internal/cache"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

type rateLimited struct {
	next    Generator
	limiter *rate.Limiter
}

// RateLimited paces calls to next at perMinute requests per minute.
// A non-positive rate returns next unchanged.
func RateLimited(next Generator, perMinute int) Generator {
	if perMinute <= 0 {
		return next
	}
	return &rateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

func (r *rateLimited) Generate(ctx context.Context, req Request) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("wait for rate limiter: %w", err)
	}
	return r.next.Generate(ctx, req)
}

type cached struct {
	next     Generator
	cache    *cache.Cache
	provider string
	model    string
	logger   logger.Logger
}

// Cached answers repeated requests from c. Only successful responses are
// stored. Cache failures are logged and fall through to next.
func Cached(next Generator, c *cache.Cache, provider, model string, log logger.Logger) Generator {
	if c == nil {
		return next
	}
	return &cached{next: next, cache: c, provider: provider, model: model, logger: log}
}

func (g *cached) Generate(ctx context.Context, req Request) (string, error) {
	key := cache.Key(g.provider, g.model, req.System, req.Prompt,
		strconv.Itoa(req.MaxTokens), strconv.FormatFloat(req.Temperature, 'f', -1, 64))

	entry, err := g.cache.Get(key)
	switch {
	case err == nil:
		g.logger.Debug(ctx, "Summary cache hit for %s/%s", g.provider, g.model)
		return entry.Text, nil
	case !errors.Is(err, cache.ErrMiss):
		g.logger.Warn(ctx, "Summary cache read failed: %v", err)
	}

	text, err := g.next.Generate(ctx, req)
	if err != nil {
		return "", err
	}

	if err := g.cache.Put(key, cache.Entry{Text: text, Model: g.model, CreatedAt: time.Now().UTC()}); err != nil {
		g.logger.Warn(ctx, "Summary cache write failed: %v", err)
	}
	return text, nil
}
