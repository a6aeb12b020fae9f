package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/John-Akins/jago-backend/internal/auth"
	"github.com/John-Akins/jago-backend/internal/config"
	"github.com/John-Akins/jago-backend/internal/kyc"
	"github.com/John-Akins/jago-backend/internal/notification"
	"github.com/John-Akins/jago-backend/internal/user"
	"github.com/John-Akins/jago-backend/internal/wallet"
)

type Services struct {
	User         user.Service
	Wallet       wallet.Service
	Kyc          kyc.Service
	Notification *notification.Service
}

type Server struct {
	router *gin.Engine
	http   *http.Server
	config *config.Config
}

func New(cfg *config.Config, svcs Services) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	userHandler := user.NewHandler(svcs.User)
	walletHandler := wallet.NewHandler(svcs.Wallet)
	kycHandler := kyc.NewHandler(svcs.Kyc)
	notificationHandler := notification.NewHandler(svcs.Notification)

	public := router.Group("/auth")
	{
		public.POST("/signup", userHandler.Signup)
		public.POST("/signin", userHandler.Signin)
	}

	authMiddleware := auth.Middleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.Me)
		protected.POST("/kyc", kycHandler.Submit)
		protected.GET("/kyc", kycHandler.Get)
		protected.POST("/wallet/fund", walletHandler.Fund)
		protected.POST("/wallet/pay-bill", walletHandler.PayBill)
		protected.GET("/wallet/balance", walletHandler.Balance)
		protected.GET("/wallet/transactions/:transactionID/status", walletHandler.TransactionStatus)
		protected.GET("/notifications", notificationHandler.List)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())

	return &Server{
		router: router,
		config: cfg,
	}
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    ":" + s.config.Port,
		Handler: s.router,
	}
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting new connections and waits for in-flight requests
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
