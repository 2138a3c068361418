package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	config "github.com/shubham-khot-pro/todo-service/internal/configs"
	httpapi "github.com/shubham-khot-pro/todo-service/internal/http"
	"github.com/shubham-khot-pro/todo-service/internal/mail"
	"github.com/shubham-khot-pro/todo-service/internal/queue"
	repository "github.com/shubham-khot-pro/todo-service/internal/repositories"
	"github.com/shubham-khot-pro/todo-service/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the todo HTTP API and the digest mail workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()

		redisClient := config.NewRedisClient(cfg.RedisAddr)
		defer redisClient.Close()

		database := config.New(cfg.DatabaseDSN)
		taskRepo := repository.NewTaskRepository(database)

		taskService := services.NewTaskService(taskRepo)
		digestService := services.NewDigestService(taskRepo)
		digestQueue := queue.NewRedisDigestQueue(redisClient, cfg.DigestQueueKey)

		worker := services.NewDigestWorker(
			digestService,
			digestQueue,
			mail.LogMailer{},
			cfg.DigestWorkers,
			time.Duration(cfg.DigestPollSeconds)*time.Second,
		)

		e := echo.New()
		handler := httpapi.NewHandler(taskService, digestService, digestQueue)
		httpapi.Register(e, handler, cfg.RateLimit)

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		ctx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		_ = e.Shutdown(ctx)
		worker.Shutdown(ctx)

		log.Println("HTTP server and digest workers shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
