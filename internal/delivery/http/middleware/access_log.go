package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AccessLogMiddleware struct {
	logger *log.Logger
}

func NewAccessLogMiddleware(logger *log.Logger) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AccessLogMiddleware{logger: logger}
}

// Middleware assigns a request id (or keeps the caller's) and logs one line
// per request. OriginalURL keeps the query string, which for this API carries
// the search terms worth correlating with latency.
func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
			c.Set("X-Request-ID", rid)
		}

		err := c.Next()

		if m == nil || m.logger == nil {
			return err
		}

		m.logger.Printf(
			"[HTTP] rid=%s ip=%s method=%s path=%s status=%d latency=%s resp_bytes=%d",
			rid, c.IP(), c.Method(), c.OriginalURL(),
			c.Response().StatusCode(), time.Since(start),
			c.Response().Header.ContentLength(),
		)
		return err
	}
}
