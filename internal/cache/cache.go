package cache

import "time"

// Cache memoizes numeral to integer conversions
type Cache interface {
	Get(key string) (int, bool)
	Set(key string, value int, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey generates a cache key from a numeral
func CacheKey(numeral string) string {
	return "merchant:v1:" + numeral
}

// NopCache never stores anything
type NopCache struct{}

func (NopCache) Get(string) (int, bool)               { return 0, false }
func (NopCache) Set(string, int, time.Duration) error { return nil }
func (NopCache) Delete(string) error                  { return nil }
func (NopCache) Clear() error                         { return nil }
