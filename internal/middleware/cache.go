package middleware

import (
    "bytes"
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/hotel-reservation/internal/config"
)

// bodyCapture buffers the response body while forwarding it to the
// client so a successful listing can be stored once the handler has
// run.  Responses larger than limit are forwarded but never cached.
type bodyCapture struct {
    http.ResponseWriter
    status   int
    buf      bytes.Buffer
    limit    int
    overflow bool
}

func (w *bodyCapture) WriteHeader(code int) { w.status = code; w.ResponseWriter.WriteHeader(code) }

func (w *bodyCapture) Write(b []byte) (int, error) {
    if !w.overflow {
        if w.limit > 0 && w.buf.Len()+len(b) > w.limit {
            w.overflow = true
            w.buf.Reset()
        } else {
            w.buf.Write(b)
        }
    }
    return w.ResponseWriter.Write(b)
}

// cacheKey names the stored copy of one listing.  Every route of this
// service renders deterministically from path and query alone — there
// is no per-caller content — so those two are the whole key.
func cacheKey(cfg config.CacheConfig, c echo.Context) string {
    return cfg.Prefix + ":" + c.Path() + "?" + c.Request().URL.RawQuery
}

// NewRedisCache caches successful GET listings so repeated polls of the
// room, guest and reservation lists do not hold the desk's read lock.
// Only 200 responses are stored and every response here is JSON, so the
// cached value is the raw body alone.  Entries expire on the TTL and
// are also dropped eagerly by NewCacheInvalidator whenever a booking
// mutation lands, so a fresh reservation is visible immediately.
// Without Redis (nil client) the middleware is a pass-through.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return func(c echo.Context) error { return next(c) } }
    }
    ttl := cfg.TTL
    if ttl <= 0 {
        ttl = 15 * time.Second
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if !cfg.Methods[c.Request().Method] {
                return next(c)
            }

            ctx := c.Request().Context()
            key := cacheKey(cfg, c)

            if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
                c.Response().Header().Set("X-Cache", "HIT")
                return c.JSONBlob(http.StatusOK, body)
            }

            cw := &bodyCapture{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
            c.Response().Writer = cw
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }

            if cw.status == http.StatusOK && !cw.overflow && cw.buf.Len() > 0 {
                _ = rdb.SetEx(context.Background(), key, cw.buf.Bytes(), ttl).Err()
            }
            return nil
        }
    }
}

// NewCacheInvalidator drops every cached listing after a booking
// mutation succeeds.  Any non-cacheable method that answers below 400
// counts as a mutation: a created, edited or cancelled reservation
// moves listings and occupancy flags, and a guest edit changes the
// guest listings.  The deletion runs off the request path; the TTL
// still bounds staleness if it fails.
func NewCacheInvalidator(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return func(c echo.Context) error { return next(c) } }
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if err := next(c); err != nil {
                return err
            }
            if cfg.Methods[c.Request().Method] || c.Response().Status >= http.StatusBadRequest {
                return nil
            }
            go dropCachedListings(rdb, cfg.Prefix)
            return nil
        }
    }
}

func dropCachedListings(rdb *redis.Client, prefix string) {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    iter := rdb.Scan(ctx, 0, prefix+":*", 100).Iterator()
    var keys []string
    for iter.Next(ctx) {
        keys = append(keys, iter.Val())
    }
    if iter.Err() != nil || len(keys) == 0 {
        return
    }
    _ = rdb.Del(ctx, keys...).Err()
}
