package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// ConnectivityCache remembers recent backend probe results in process memory.
type ConnectivityCache struct {
	cache *cache.Cache
}

func NewConnectivityCache(defaultTTL time.Duration) *ConnectivityCache {
	return &ConnectivityCache{
		cache: cache.New(defaultTTL, 2*defaultTTL),
	}
}

func (c *ConnectivityCache) Get(key string) (bool, bool) {
	if x, found := c.cache.Get(key); found {
		return x.(bool), true
	}
	return false, false
}

func (c *ConnectivityCache) Set(key string, connected bool, ttl time.Duration) {
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	c.cache.Set(key, connected, ttl)
}

func (c *ConnectivityCache) Delete(key string) {
	c.cache.Delete(key)
}
