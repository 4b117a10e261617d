package middleware

import (
	"github.com/eventgobj/eventgo/internal/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("db", db)
		c.Next()
	}
}

func LoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("logger", log)
		c.Next()
	}
}

func GetDB(c *gin.Context) (*gorm.DB, bool) {
	db, exists := c.Get("db")
	if !exists {
		return nil, false
	}
	gormDB, ok := db.(*gorm.DB)
	return gormDB, ok
}

func GetLogger(c *gin.Context) *logger.Logger {
	log, exists := c.Get("logger")
	if !exists {
		return nil
	}
	l, _ := log.(*logger.Logger)
	return l
}
