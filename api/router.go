// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"bitwise74/matrix-api/db"
	"bitwise74/matrix-api/middleware"
	"bitwise74/matrix-api/security"
	"bitwise74/matrix-api/service"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

type API struct {
	DB     *gorm.DB
	Router *gin.Engine
	Argon  *security.ArgonHash
	Mailer service.Mailer
}

// NewRouter builds the production API: opens the database from config,
// connects the SMTP mailer and starts the background code sweep.
func NewRouter() (*API, error) {
	database, err := db.New(viper.GetString("database.path"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite database, %w", err)
	}

	makeLogger()

	a := New(database, service.NewSMTPMailer())

	// Expired codes have a 30 minute lifetime at most, sweeping hourly
	// keeps nothing stale for long
	service.CodeCleanup(time.Hour, database)

	return a, nil
}

// New wires the router around the given collaborators. Tests call this
// directly with an in-memory database and a fake mailer.
func New(database *gorm.DB, mailer service.Mailer) *API {
	a := &API{
		DB:     database,
		Argon:  security.NewArgon(),
		Mailer: mailer,
	}

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("host.cors_origins"),
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	jwt := middleware.NewJWTMiddleware(database)
	rateLimit := viper.GetInt("security.rate_limit")
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: rateLimit,
		Burst:             rateLimit * 2,
	})

	main := router.Group("/api", rateLimiter)
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)
	}

	auth := main.Group("/auth", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/auth/register 	-> Registers a new user and mails a verification code
		auth.POST("/register", a.AuthRegister)

		// POST /api/auth/login 	-> Checks credentials and mails a second-factor code
		auth.POST("/login", a.AuthLogin)

		// POST /api/auth/verifyCode	-> Activates a pending account
		auth.POST("/verifyCode", a.AuthVerifyCode)

		// POST /api/auth/secondFactorAuthentication -> Completes a login
		auth.POST("/secondFactorAuthentication", a.AuthSecondFactor)

		// POST /api/auth/resendCode	-> Re-issues the pending verification code
		auth.POST("/resendCode", a.AuthResendCode)

		// POST /api/auth/resetPassword	-> Mails a password reset link
		auth.POST("/resetPassword", a.AuthResetPassword)

		// PUT /api/auth/changeResetPassword -> Sets a new password from a reset token
		auth.PUT("/changeResetPassword", a.AuthChangeResetPassword)

		// GET /api/auth/verify		-> Returns the authenticated user
		auth.GET("/verify", jwt, a.AuthVerify)

		// POST /api/auth/logout	-> Clears the session cookie
		auth.POST("/logout", a.AuthLogout)
	}

	matrices := main.Group("/matrices", jwt, middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/matrices		-> Creates a new matrix
		matrices.POST("", a.MatrixCreate)

		// GET /api/matrices?status=	-> Lists the user's matrices
		matrices.GET("", a.MatrixList)

		// GET /api/matrices/basics	-> Sidebar-formatted listing
		matrices.GET("/basics", cacheFor(5), a.MatrixBasics)

		// GET /api/matrices/statistics	-> Aggregate counts per status
		matrices.GET("/statistics", cacheFor(5), a.MatrixStatistics)

		// GET /api/matrices/:id	-> Returns a single matrix
		matrices.GET("/:id", a.MatrixFetch)

		// PUT /api/matrices/:id	-> Partially updates a matrix
		matrices.PUT("/:id", a.MatrixUpdate)

		// DELETE /api/matrices/:id	-> Deletes a matrix
		matrices.DELETE("/:id", a.MatrixDelete)

		// PUT /api/matrices/:id/problem/:problemId -> Updates a single problem
		matrices.PUT("/:id/problem/:problemId", a.ProblemUpdate)
	}

	return a
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

// cacheFor caches a response per user and URI. Only mounted behind the JWT
// middleware, which guarantees userID is set.
func cacheFor(sec int) gin.HandlerFunc {
	return cache.Cache(store, time.Second*time.Duration(sec),
		cache.WithCacheStrategyByRequest(func(c *gin.Context) (bool, cache.Strategy) {
			return true, cache.Strategy{
				CacheKey: c.GetString("userID") + c.Request.RequestURI,
			}
		}))
}
