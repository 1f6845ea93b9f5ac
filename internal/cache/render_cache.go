package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/lessonforge/lessonforge-api/pkg/logger"
	"github.com/lessonforge/lessonforge-api/pkg/metrics"
)

const renderCacheName = "lesson_plan_pdf"

// RenderCache keeps recently rendered lesson plan PDFs in memory. Rendering
// is deterministic, so entries never go stale; the TTL only bounds memory
// held for plans nobody is downloading anymore.
type RenderCache struct {
	cache *gocache.Cache
}

// NewRenderCache creates a render cache whose entries expire after
// ttlSeconds.
func NewRenderCache(ttlSeconds int) *RenderCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	return &RenderCache{
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Get returns the cached PDF bytes for a lesson plan ID.
func (rc *RenderCache) Get(planID string) ([]byte, bool) {
	data, found := rc.cache.Get(planID)
	if !found {
		metrics.CacheMisses.WithLabelValues(renderCacheName).Inc()
		return nil, false
	}

	pdf, ok := data.([]byte)
	if !ok {
		logger.Debug("Invalid render cache entry type", zap.String("plan_id", planID))
		rc.cache.Delete(planID)
		metrics.CacheMisses.WithLabelValues(renderCacheName).Inc()
		return nil, false
	}

	metrics.CacheHits.WithLabelValues(renderCacheName).Inc()
	return pdf, true
}

// Set stores the rendered PDF for a lesson plan ID.
func (rc *RenderCache) Set(planID string, pdf []byte) {
	rc.cache.Set(planID, pdf, gocache.DefaultExpiration)
	metrics.CacheSize.WithLabelValues(renderCacheName).Set(float64(rc.cache.ItemCount()))
}
