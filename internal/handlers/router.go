package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rishtahub/rishta_backend/internal/config"
	"github.com/rishtahub/rishta_backend/internal/middleware"
	"github.com/rishtahub/rishta_backend/internal/realtime"
	"github.com/rishtahub/rishta_backend/internal/repositories"
	"github.com/rishtahub/rishta_backend/internal/services"
	"gorm.io/gorm"
)

// NewRouter assembles repositories, services and handlers into one gin
// engine. The websocket endpoint shares the same auth middleware as the
// REST routes; browsers pass the token via query parameter there.
func NewRouter(cfg *config.Config, db *gorm.DB, hub *realtime.Hub, presence *realtime.Presence, bus realtime.Bus) *gin.Engine {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	users := repositories.NewUserRepository(db)
	profiles := repositories.NewProfileRepository(db)
	relations := repositories.NewRelationRepository(db)
	explore := repositories.NewExploreRepository(db)
	messages := repositories.NewMessageRepository(db)
	tickets := repositories.NewTicketRepository(db)

	relationSvc := services.NewRelationService(db, relations)
	exploreSvc := services.NewExploreService(profiles, explore, relations)
	matchSvc := services.NewMatchService(profiles, cfg.MinMatchScore)
	chatSvc := services.NewChatService(messages, relations, presence, bus, cfg.ChatMaxMessageLen)
	profileSvc := services.NewProfileService(profiles)
	ticketSvc := services.NewTicketService(tickets)
	accountSvc := services.NewAccountService(db, users, profiles, relations, explore, messages)

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerUser, cfg.RateLimitPerIP, time.Minute)

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authed := router.Group("/api/v1")
	authed.Use(middleware.Auth(cfg.JWTSecret), limiter.Handler())

	NewProfileHandler(profileSvc).Register(authed)
	NewRelationHandler(relationSvc).Register(authed)
	NewExploreHandler(exploreSvc).Register(authed)
	NewMatchHandler(matchSvc).Register(authed)
	NewChatHandler(chatSvc).Register(authed)
	NewTicketHandler(ticketSvc).Register(authed)
	NewAccountHandler(accountSvc).Register(authed)
	NewWSHandler(hub, presence, chatSvc).Register(authed)

	return router
}
