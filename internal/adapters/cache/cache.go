package cache

import (
	"time"

	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/domain"
	"github.com/jellydator/ttlcache/v3"
)

type hitResult[T any] struct {
	data    T
	valid   bool
	claimed bool
}

// Cache coordinates callers creating the same entry.
// A claimed key must be either set or deleted by the claimer.
type Cache[T any] interface {
	getOrClaim(key string) hitResult[T]
	set(key string, data T)
	delete(key string)
	wait()
	name() string
}

type entry[T any] struct {
	data  T
	valid bool
}

type ttlCache[T any] struct {
	cacheName    string
	cache        *ttlcache.Cache[string, entry[T]]
	waitInterval time.Duration
}

func (c *ttlCache[T]) getOrClaim(key string) hitResult[T] {
	item, existed := c.cache.GetOrSet(key, entry[T]{valid: false})
	return hitResult[T]{
		data:    item.Value().data,
		valid:   item.Value().valid,
		claimed: !existed,
	}
}

func (c *ttlCache[T]) set(key string, data T) {
	c.cache.Set(key, entry[T]{data: data, valid: true}, ttlcache.DefaultTTL)
}

func (c *ttlCache[T]) delete(key string) {
	c.cache.Delete(key)
}

func (c *ttlCache[T]) wait() {
	time.Sleep(c.waitInterval)
}

func (c *ttlCache[T]) name() string {
	return c.cacheName
}

// Entries expire ttl after they were set, regardless of reads
func NewTTLCache[T any](name string, ttl time.Duration) Cache[T] {
	cache := ttlcache.New[string, entry[T]](
		ttlcache.WithTTL[string, entry[T]](ttl),
		ttlcache.WithDisableTouchOnHit[string, entry[T]](),
	)
	go cache.Start()
	return &ttlCache[T]{
		cacheName:    name,
		cache:        cache,
		waitInterval: 50 * time.Millisecond,
	}
}

type PlayerCache = Cache[domain.Player]
type GuildCache = Cache[domain.Guild]
type PlayerModsCache = Cache[domain.PlayerMods]

func NewPlayerCache(ttl time.Duration) PlayerCache {
	return NewTTLCache[domain.Player]("player", ttl)
}

func NewGuildCache(ttl time.Duration) GuildCache {
	return NewTTLCache[domain.Guild]("guild", ttl)
}

func NewPlayerModsCache(ttl time.Duration) PlayerModsCache {
	return NewTTLCache[domain.PlayerMods]("player_mods", ttl)
}
