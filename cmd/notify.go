package cmd

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "github.com/shubham-khot-pro/todo-service/internal/configs"
	"github.com/shubham-khot-pro/todo-service/internal/queue"
)

var notifyCmd = &cobra.Command{
	Use:   "notify <user-id>",
	Short: "Schedule a todo digest email for a user",
	Long:  "Pushes the user onto the digest queue; a running serve process delivers the email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()

		redisClient := config.NewRedisClient(cfg.RedisAddr)
		defer redisClient.Close()

		digestQueue := queue.NewRedisDigestQueue(redisClient, cfg.DigestQueueKey)
		if err := digestQueue.Enqueue(context.Background(), args[0]); err != nil {
			return err
		}

		log.Printf("digest scheduled for user %s", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(notifyCmd)
}
