package xredis

import (
	"context"
	"encoding/json"
	"path"
	"time"

	"github.com/puzpuzpuz/xsync"
)

type localEntry struct {
	value    []byte
	expireAt time.Time
}

func (e localEntry) expired(now time.Time) bool {
	return !e.expireAt.IsZero() && !now.Before(e.expireAt)
}

// localClient keeps values in process memory. It is used when no redis address is configured, so
// a single instance deployment does not need a redis server.
type localClient struct {
	m   *xsync.MapOf[string, localEntry]
	now func() time.Time
}

func NewLocalClient() *localClient {
	return &localClient{m: xsync.NewMapOf[localEntry](), now: time.Now}
}

func (c *localClient) load(key string) (localEntry, bool) {
	e, ok := c.m.Load(key)
	if !ok {
		return localEntry{}, false
	}

	if e.expired(c.now()) {
		c.m.Delete(key)
		return localEntry{}, false
	}

	return e, true
}

func (c *localClient) Exist(ctx context.Context, key string) (bool, error) {
	_, ok := c.load(key)
	return ok, nil
}

func (c *localClient) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		c.m.Delete(k)
	}

	return nil
}

func (c *localClient) Keys(ctx context.Context, pattern string) ([]string, error) {
	now := c.now()
	keys := []string{}
	c.m.Range(func(key string, e localEntry) bool {
		if e.expired(now) {
			return true
		}

		if ok, _ := path.Match(pattern, key); ok {
			keys = append(keys, key)
		}

		return true
	})

	return keys, nil
}

func (c *localClient) Set(ctx context.Context, key, value string) error {
	c.m.Store(key, localEntry{value: []byte(value)})
	return nil
}

func (c *localClient) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}

	e := localEntry{value: b}
	if ttl > 0 {
		e.expireAt = c.now().Add(ttl)
	}

	c.m.Store(key, e)
	return nil
}

func (c *localClient) Get(ctx context.Context, key string) (string, error) {
	e, ok := c.load(key)
	if !ok {
		return "", Nil
	}

	return string(e.value), nil
}

func (c *localClient) GetObj(ctx context.Context, key string, v any) error {
	e, ok := c.load(key)
	if !ok {
		return Nil
	}

	return json.Unmarshal(e.value, v)
}
