package server

import (
	"fmt"
	"os"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	errs "github.com/techagentng/messaging/errors"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 10,
	})
	limitTokenRate := ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: errs.ErrorHandler,
		KeyFunc:      func(c *gin.Context) string { return c.ClientIP() },
	})

	apirouter := router.Group("/api/v1")
	apirouter.POST("/token", limitTokenRate, s.handleToken())
	apirouter.POST("/token/refresh", s.handleTokenRefresh())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.GET("/logout", s.handleLogout())
	authorized.GET("/me", s.handleShowProfile())

	authorized.GET("/users", s.handleListUsers())
	authorized.POST("/users", s.handleCreateUser())
	authorized.GET("/users/:id", s.handleGetUser())
	authorized.PUT("/users/:id", s.handleUpdateUser())
	authorized.PATCH("/users/:id", s.handleUpdateUser())
	authorized.DELETE("/users/:id", s.handleDeleteUser())

	authorized.GET("/conversations", s.handleListConversations())
	authorized.POST("/conversations", s.handleCreateConversation())
	authorized.GET("/conversations/:id", s.handleGetConversation())
	authorized.PUT("/conversations/:id", s.handleUpdateConversation())
	authorized.PATCH("/conversations/:id", s.handleUpdateConversation())
	authorized.DELETE("/conversations/:id", s.handleDeleteConversation())
	authorized.GET("/conversations/:id/messages", s.handleListConversationMessages())
	authorized.POST("/conversations/:id/messages", s.handleCreateConversationMessage())

	authorized.GET("/messages", s.handleListMessages())
	authorized.POST("/messages", s.handleCreateMessage())
	authorized.GET("/messages/:id", s.handleGetMessage())
	authorized.PUT("/messages/:id", s.handleUpdateMessage())
	authorized.PATCH("/messages/:id", s.handleUpdateMessage())
	authorized.DELETE("/messages/:id", s.handleDeleteMessage())
}
