package server

import (
	"fmt"
	"os"

	"github.com/eventgobj/eventgo/config"
	"github.com/eventgobj/eventgo/internal/handlers"
	"github.com/eventgobj/eventgo/internal/logger"
	"github.com/eventgobj/eventgo/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	log := logger.NewLogger()
	defer log.Close()

	r := gin.Default()
	setupRoutes(r, db, log)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info("SERVER", fmt.Sprintf("listening on :%s", port))
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB, log *logger.Logger) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.LoggerMiddleware(log))

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)

		public.GET("/events", handlers.ListEvents)
		public.GET("/events/:id", handlers.GetEvent)
		public.GET("/events/:id/tickets", handlers.ListEventTickets)
		public.GET("/events/:id/reviews", handlers.ListEventReviews)
		public.GET("/tickets/:id", handlers.GetTicket)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		protected.GET("/profile", handlers.GetProfile)
		protected.PUT("/profile", handlers.UpdateProfile)

		protected.POST("/events", handlers.CreateEvent)
		protected.PUT("/events/:id", handlers.UpdateEvent)
		protected.DELETE("/events/:id", handlers.DeleteEvent)
		protected.POST("/events/:id/tickets", handlers.CreateTicket)
		protected.POST("/events/:id/reviews", handlers.CreateReview)

		protected.PUT("/tickets/:id", handlers.UpdateTicket)
		protected.DELETE("/tickets/:id", handlers.DeleteTicket)
		protected.POST("/tickets/:id/purchase", handlers.PurchaseTicket)

		protected.GET("/purchases", handlers.ListPurchases)
		protected.GET("/purchases/:id", handlers.GetPurchase)
		protected.GET("/purchases/:id/qr", handlers.PurchaseQR)

		protected.POST("/validations", handlers.ValidateCredential)
	}
}
