package utils

import (
	"io"

	"github.com/MrSnakeDoc/appdeck/internal/logger"
)

// Close closes c and ignores any error.
// Use for best-effort cleanup in defer where error handling is not critical.
func Close(c io.Closer) {
	_ = c.Close()
}

// CloseLogged closes c and logs the outcome under name.
// Reports whether the close succeeded.
func CloseLogged(c io.Closer, name string, log logger.Logger) bool {
	if err := c.Close(); err != nil {
		log.Warn("failed to close", logger.String("resource", name), logger.Error(err))
		return false
	}
	log.Debug("closed", logger.String("resource", name))
	return true
}
