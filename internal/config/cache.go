package config

import (
    "strings"
    "time"
)

// CacheConfig tunes the Redis response cache that sits in front of the
// public catalog routes. Methods lists which HTTP methods are cached,
// KeyStrategy picks what goes into the cache key, and MaxBodyBytes caps
// the size of a stored response so a huge tour listing cannot flood
// Redis.
type CacheConfig struct {
    Enabled      bool
    Methods      map[string]bool
    TTL          time.Duration
    KeyStrategy  string
    Prefix       string
    MaxBodyBytes int
}

// LoadCacheConfig builds a CacheConfig from CACHE_* environment
// variables, with defaults suitable for the catalog endpoints.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled:      envBool("CACHE_ENABLED", true),
        Methods:      methodSet(envStr("CACHE_METHODS", "GET")),
        TTL:          envDur("CACHE_TTL", 30*time.Second),
        KeyStrategy:  envStr("CACHE_KEY_STRATEGY", "route_query"),
        Prefix:       envStr("CACHE_PREFIX", "cache"),
        MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
    }
}

func methodSet(csv string) map[string]bool {
    set := make(map[string]bool)
    for _, m := range strings.Split(csv, ",") {
        if m = strings.ToUpper(strings.TrimSpace(m)); m != "" {
            set[m] = true
        }
    }
    return set
}
