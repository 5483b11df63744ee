package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/bsgholding/cms-backend/internal/config"
)

// recordingWriter tees the response into a buffer while forwarding it to
// the client, so a successful reply can be cached after the handler ran.
// Bodies over the limit are forwarded but not recorded.
type recordingWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
}

func (w *recordingWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	if w.limit <= 0 {
		w.buf.Write(b)
	} else if remain := w.limit - w.size; remain > 0 {
		if int64(len(b)) <= remain {
			w.buf.Write(b)
		} else {
			w.buf.Write(b[:remain])
		}
	}
	w.size += int64(len(b))
	return w.ResponseWriter.Write(b)
}

// cacheKey hashes the request parts selected by the key strategy under the
// configured prefix. Hashing keeps query strings from producing unbounded
// key material.
func cacheKey(cfg config.CacheConfig, c echo.Context) string {
	r := c.Request()

	var tail string
	switch strings.ToLower(cfg.KeyStrategy) {
	case "route":
		tail = "route:" + c.Path()
	case "method_route":
		tail = "method:" + r.Method + ":route:" + c.Path()
	case "method_route_query":
		tail = "method:" + r.Method + ":route:" + c.Path() + ":q:" + r.URL.RawQuery
	default: // route_query
		tail = "route:" + c.Path() + ":q:" + r.URL.RawQuery
	}

	sum := sha1.Sum([]byte(tail))
	return fmt.Sprintf("%s:%x", cfg.Prefix, sum[:])
}

// Cached entries pack status, headers and body into one value:
// [4 bytes status][4 bytes header length][header JSON][body].
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
	hdrJSON, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 8+len(hdrJSON)+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(status))
	binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
	copy(out[8:], hdrJSON)
	copy(out[8+len(hdrJSON):], body)
	return out, nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
	if len(bs) < 8 {
		return 0, nil, nil, false
	}
	status = int(binary.BigEndian.Uint32(bs[0:4]))
	hlen := int(binary.BigEndian.Uint32(bs[4:8]))
	if hlen < 0 || 8+hlen > len(bs) {
		return 0, nil, nil, false
	}
	header = make(http.Header)
	if hlen > 0 {
		if err := json.Unmarshal(bs[8:8+hlen], &header); err != nil {
			return 0, nil, nil, false
		}
	}
	return status, header, bs[8+hlen:], true
}

// PurgePrefix drops every cached response under the configured prefix. The
// content-change consumer calls this after an admin write so public lists
// converge before their TTL would expire. SCAN keeps the purge incremental;
// a failed purge only means stale data for the remaining TTL.
func PurgePrefix(ctx context.Context, rdb *redis.Client, prefix string) error {
	if rdb == nil || prefix == "" {
		return nil
	}
	var cursor uint64
	for {
		keys, next, err := rdb.Scan(ctx, cursor, prefix+":*", 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// storable reports whether a response may be written to the cache: a 200
// within the body limit that did not opt out via Cache-Control: no-store.
// Handlers use no-store for replies that only describe a transient failure.
func storable(status int, hdr http.Header, size, limit int64) bool {
	if status != http.StatusOK {
		return false
	}
	if limit > 0 && size > limit {
		return false
	}
	return !strings.Contains(strings.ToLower(hdr.Get("Cache-Control")), "no-store")
}

// NewRedisCache caches whole responses (status, headers and body) for the
// public read endpoints, so cache hits are byte-identical to handler output.
// Only 200 responses within the body limit are stored.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
				return next(c)
			}

			ctx := c.Request().Context()
			key := cacheKey(cfg, c)

			if bs, err := rdb.Get(ctx, key).Bytes(); err == nil {
				if status, hdr, body, ok := decodePayload(bs); ok {
					for k, vals := range hdr {
						// Echo recomputes Content-Length from the body.
						if strings.EqualFold(k, "Content-Length") {
							continue
						}
						for _, v := range vals {
							c.Response().Header().Add(k, v)
						}
					}
					c.Response().Header().Set("X-Cache", "HIT")
					c.Response().WriteHeader(status)
					if len(body) > 0 {
						_, _ = c.Response().Write(body)
					}
					return nil
				}
			}

			w := &recordingWriter{
				ResponseWriter: c.Response().Writer,
				status:         http.StatusOK,
				limit:          int64(cfg.MaxBodyBytes),
			}
			c.Response().Writer = w
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			if storable(w.status, c.Response().Header(), w.size, w.limit) {
				hdr := make(http.Header, len(c.Response().Header()))
				for k, vals := range c.Response().Header() {
					hdr[k] = append([]string(nil), vals...)
				}
				if payload, err := encodePayload(w.status, hdr, w.buf.Bytes()); err == nil {
					_ = rdb.SetEx(context.Background(), key, payload, cfg.TTL).Err()
				}
			}
			return nil
		}
	}
}
