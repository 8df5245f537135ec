package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// RequestLogger registra cada petición con método, ruta, status y latencia.
// En respuestas 5xx agrega la causa, sea el error del handler o el que dejó writeError.
func RequestLogger(l *logger.Logger) fiber.Handler {
	log := l.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		cause := err
		if cause == nil {
			cause, _ = c.Locals(localInternalError).(error)
		}
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(cause)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("owner_id", GetOwnerID(c)).
			Msg("request")
		return err
	}
}
