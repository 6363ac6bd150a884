package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-admin-dashboard/internal/config"
)

// maxLoginBody caps how much of the body is inspected for the email.
const maxLoginBody = 64 << 10

// loginBuckets refills and checks every bucket in KEYS, then takes one token
// from each only if all of them still have one.  Buckets are hashes of
// tokens (t) and last refill time in ms (ts).
//
// ARGV: now_ms, capacity, refill_tokens, interval_ms, ttl_seconds
// Returns: {allowed, remaining, retry_ms}
var loginBuckets = redis.NewScript(`
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local refill = tonumber(ARGV[3])
local interval_ms = tonumber(ARGV[4])
local ttl = tonumber(ARGV[5])

local tokens, stamps = {}, {}
local retry_ms = 0
for i, key in ipairs(KEYS) do
	local state = redis.call('HMGET', key, 't', 'ts')
	local t, ts = tonumber(state[1]), tonumber(state[2])
	if t == nil or ts == nil then
		t, ts = capacity, now_ms
	end
	local steps = math.floor(math.max(0, now_ms - ts) / interval_ms)
	if steps > 0 then
		t = math.min(capacity, t + steps * refill)
		ts = ts + steps * interval_ms
	end
	if t >= capacity then
		ts = now_ms
	elseif t <= 0 then
		retry_ms = math.max(retry_ms, interval_ms - (now_ms - ts))
	end
	tokens[i], stamps[i] = t, ts
end

local allowed = 0
if retry_ms == 0 then
	allowed = 1
end
local remaining = capacity
for i, key in ipairs(KEYS) do
	local t = tokens[i] - allowed
	remaining = math.min(remaining, t)
	redis.call('HSET', key, 't', t, 'ts', stamps[i])
	redis.call('EXPIRE', key, ttl)
end
return {allowed, remaining, retry_ms}
`)

// LoginThrottle limits sign-in attempts with Redis token buckets: one per
// client IP and one per submitted email, so an account cannot be guessed at
// request speed from one address nor from many.  A request is admitted only
// when both buckets have a token left.  The middleware is a no-op when
// disabled or without Redis, and fails open on Redis errors.
func LoginThrottle(cfg config.RateLimitConfig, rdb *redis.Client, log logrus.FieldLogger) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("component", "login_throttle")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			email := submittedEmail(c)
			keys := throttleKeys(cfg.Prefix, ip, email)

			res, err := loginBuckets.Run(c.Request().Context(), rdb, keys,
				time.Now().UnixMilli(),
				cfg.Capacity,
				cfg.RefillTokens,
				cfg.RefillInterval.Milliseconds(),
				int64(cfg.TTL/time.Second),
			).Int64Slice()
			if err != nil || len(res) != 3 {
				log.WithError(err).WithField("keys", keys).Warn("login throttle unavailable, allowing request")
				return next(c)
			}
			allowed, remaining, retryMs := res[0] == 1, res[1], res[2]

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(max(remaining, 0), 10))
			if allowed {
				return next(c)
			}

			secs := int(math.Ceil(float64(retryMs) / 1000))
			h.Set("Retry-After", strconv.Itoa(secs))
			log.WithFields(logrus.Fields{"ip": ip, "email": email, "retry_after": secs}).Warn("login attempts throttled")
			return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "too many login attempts, please try again later"})
		}
	}
}

// throttleKeys names the buckets of one attempt.  Without an email only the
// IP bucket applies.
func throttleKeys(prefix, ip, email string) []string {
	if ip == "" {
		ip = "unknown"
	}
	keys := []string{prefix + ":ip:" + ip}
	if email != "" {
		keys = append(keys, prefix+":email:"+email)
	}
	return keys
}

// submittedEmail peeks at the login body and returns the trimmed, lower-cased
// email.  The body is restored for the handler.
func submittedEmail(c echo.Context) string {
	req := c.Request()
	if req.Body == nil || req.Body == http.NoBody {
		return ""
	}
	raw, err := io.ReadAll(io.LimitReader(req.Body, maxLoginBody))
	req.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(raw), req.Body), req.Body}
	if err != nil {
		return ""
	}

	var email string
	if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		var in struct {
			Email string `json:"email"`
		}
		if json.Unmarshal(raw, &in) == nil {
			email = in.Email
		}
	} else if vals, err := url.ParseQuery(string(raw)); err == nil {
		email = vals.Get("email")
	}
	return strings.ToLower(strings.TrimSpace(email))
}
