package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path"
	"strconv"
	"syscall"
	"time"
	"usatag/src/boot"
	"usatag/src/config"
	"usatag/src/db"
	"usatag/src/middlewares"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var amountValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	amount, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return false
	}
	return amount > 0
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("amount", amountValidatorFunc)
	}
}

func corsConfig() cors.Config {
	cc := cors.DefaultConfig()
	cc.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cc.AllowHeaders = []string{"Origin", "X-Requested-With", "Content-Type", "Accept", "Authorization"}
	cc.AllowOriginFunc = func(origin string) bool {
		return true
	}
	cc.AllowCredentials = true
	return cc
}

func setupRouter() *gin.Engine {
	registerValidators()

	router := gin.Default()
	router.Use(
		middlewares.RequestTimer,
		middlewares.ConnectionResetGuard,
		middlewares.SecureHeaders,
		middlewares.BodyLimit(config.MAX_BODY_BYTES),
		cors.New(corsConfig()),
	)
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})

	root := router.Group("/")
	purchaseHandlers(root)
	paymentHandlers(root)
	codesHandlers(root)
	plateCodeHandlers(root)
	envHandler(root)

	return router
}

// envHandler exposes the whitelisted client settings. There is no access
// check on this route.
func envHandler(g *gin.RouterGroup) *gin.RouterGroup {
	g.GET("/env", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"data":    config.GetPublicEnv(),
			"message": "Environment variables fetched successfully",
			"success": true,
		})
	})
	return g
}

func initLogger() {
	cwd, _ := os.Getwd()
	logsDir := path.Join(cwd, "logs")
	serverLogs := path.Join(logsDir, "server.log")
	apiLogs := path.Join(logsDir, "api.log")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		log.Printf("Could not create logs directory: %s\n", err.Error())
		return
	}

	f, err := os.Create(apiLogs)
	if err != nil {
		log.Printf("Could not create api log: %s\n", err.Error())
		return
	}
	gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   serverLogs,
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	}))
}

func loadEnv() {
	cwd, _ := os.Getwd()
	envFile := path.Join(cwd, ".env")
	if config.IsLocal() {
		if err := godotenv.Load(envFile); err != nil {
			panic(err)
		}
		return
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Could not load %s: %s\n", envFile, err.Error())
	}
}

func main() {
	loadEnv()
	initLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := boot.InitSecrets(ctx); err != nil {
		log.Printf("Could not load secrets: %s\n", err.Error())
	}
	gdb := boot.InitDb()
	if err := boot.SeedAdminUser(gdb); err != nil {
		log.Printf("Could not seed admin user: %s\n", err.Error())
	}
	boot.InitScheduler()
	worker := boot.InitWorker(ctx)

	router := setupRouter()
	server := &http.Server{
		Addr:        ":" + config.Port(),
		Handler:     router,
		ReadTimeout: config.SERVER_TIMEOUT,
		IdleTimeout: config.SERVER_TIMEOUT,
	}

	go func() {
		log.Printf("Server listening on %s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %s", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %s\n", err.Error())
	}
	if worker != nil {
		worker.Stop()
	}
	boot.StopScheduler()
	db.Close()
}
