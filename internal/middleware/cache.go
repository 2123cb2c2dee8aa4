package middleware

import (
    "bytes"
    "encoding/base64"
    "encoding/json"
    "net/http"
    "sort"
    "strings"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/dkovacev/apartment-manager/internal/config"
)

// cachedPayload is the envelope stored in Redis for a cached response.
// The body is base64 encoded so the envelope survives JSON round-trips
// regardless of content.
type cachedPayload struct {
    Status      int               `json:"status"`
    ContentType string            `json:"content_type"`
    Headers     map[string]string `json:"headers,omitempty"`
    BodyB64     string            `json:"body_b64"`
}

// captureWriter tees the response body into a buffer while passing it
// through to the client, so a successful response can be stored after
// the handler returns.
type captureWriter struct {
    http.ResponseWriter
    buf    bytes.Buffer
    status int
    tooBig bool
    limit  int
}

func (w *captureWriter) WriteHeader(code int) {
    w.status = code
    w.ResponseWriter.WriteHeader(code)
}

func (w *captureWriter) Write(p []byte) (int, error) {
    if w.status == 0 {
        w.status = http.StatusOK
    }
    if !w.tooBig {
        if w.buf.Len()+len(p) > w.limit {
            w.tooBig = true
            w.buf.Reset()
        } else {
            w.buf.Write(p)
        }
    }
    return w.ResponseWriter.Write(p)
}

// NewResponseCache returns a middleware that caches successful responses in
// Redis, keyed by user, route and sorted query string.  Keys include the
// authenticated user id so one tenant can never be served another tenant's
// summary.  Intended for the read-only summary endpoints; a nil Redis client
// or disabled config turns it into a pass-through.
func NewResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return func(c echo.Context) error { return next(c) } }
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if !cfg.Methods[c.Request().Method] {
                return next(c)
            }

            key := buildCacheKey(cfg.Prefix, c)
            ctx := c.Request().Context()

            if raw, err := rdb.Get(ctx, key).Result(); err == nil {
                var pl cachedPayload
                if jsonErr := json.Unmarshal([]byte(raw), &pl); jsonErr == nil {
                    body, decErr := base64.StdEncoding.DecodeString(pl.BodyB64)
                    if decErr == nil {
                        h := c.Response().Header()
                        for k, v := range pl.Headers {
                            h.Set(k, v)
                        }
                        if pl.ContentType != "" {
                            h.Set(echo.HeaderContentType, pl.ContentType)
                        }
                        h.Set("X-Cache", "HIT")
                        return c.Blob(pl.Status, pl.ContentType, body)
                    }
                }
                // A corrupt entry falls through to the handler and gets overwritten.
            }

            cw := &captureWriter{ResponseWriter: c.Response().Writer, limit: cfg.MaxBodyBytes}
            c.Response().Header().Set("X-Cache", "MISS")
            c.Response().Writer = cw

            if err := next(c); err != nil {
                return err
            }

            // Only 2xx responses that fit the size limit are stored.
            if cw.status >= 200 && cw.status < 300 && !cw.tooBig && cw.buf.Len() > 0 {
                pl := cachedPayload{
                    Status:      cw.status,
                    ContentType: c.Response().Header().Get(echo.HeaderContentType),
                    BodyB64:     base64.StdEncoding.EncodeToString(cw.buf.Bytes()),
                }
                if encoded, err := json.Marshal(pl); err == nil {
                    _ = rdb.Set(ctx, key, encoded, cfg.TTL).Err()
                }
            }
            return nil
        }
    }
}

func buildCacheKey(prefix string, c echo.Context) string {
    q := c.Request().URL.Query()
    keys := make([]string, 0, len(q))
    for k := range q {
        keys = append(keys, k)
    }
    sort.Strings(keys)

    var qb strings.Builder
    for i, k := range keys {
        if i > 0 {
            qb.WriteByte('&')
        }
        vals := append([]string(nil), q[k]...)
        sort.Strings(vals)
        qb.WriteString(k)
        qb.WriteByte('=')
        qb.WriteString(strings.Join(vals, ","))
    }

    parts := []string{prefix, "user", currentUserID(c), c.Request().Method, c.Path()}
    if qb.Len() > 0 {
        parts = append(parts, qb.String())
    }
    return strings.Join(parts, ":")
}
