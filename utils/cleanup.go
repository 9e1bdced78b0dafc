package utils

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

const maxRetries = 3
const retryDelay = 2 * time.Minute

// CleanupExpiredFiles removes a generated report older than the TTL.
func CleanupExpiredFiles(filePath string, ttl time.Duration) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("error checking file: %v", err)
	}

	if time.Since(info.ModTime()) > ttl {
		if err := os.Remove(filePath); err != nil {
			return fmt.Errorf("error deleting expired file: %v", err)
		}
		log.Printf("File %s deleted successfully.", filePath)
	}
	return nil
}

// CleanupAllExpired removes stale error reports and stale analysis cache
// entries.
func CleanupAllExpired(fileTTL time.Duration, redisClient *redis.Client) error {
	files, err := os.ReadDir(reportDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error reading files directory: %v", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		filePath := fmt.Sprintf("%s/%s", reportDir, file.Name())
		if err := CleanupExpiredFiles(filePath, fileTTL); err != nil {
			log.Println("Error cleaning up file:", err)
		}
	}

	if err := InvalidateCache(redisClient, "analysis"); err != nil {
		return fmt.Errorf("error cleaning up cache: %v", err)
	}

	return nil
}

// RunScheduledCleanup runs cleanup daily at 1 AM with retries, mailing the
// admin when every attempt fails.
func RunScheduledCleanup(redisClient *redis.Client) {
	c := cron.New()

	c.AddFunc("0 1 * * *", func() {
		log.Println("running scheduled cleanup task...")

		var retries int
		var cleanupSuccess bool

		for retries < maxRetries {
			log.Printf("attempt %d to clean up...", retries+1)
			err := CleanupAllExpired(24*time.Hour, redisClient)
			if err == nil {
				log.Println("cleanup successful!")
				cleanupSuccess = true
				break
			}
			log.Printf("cleanup failed: %v", err)
			retries++
			time.Sleep(retryDelay)
		}

		if !cleanupSuccess {
			log.Printf("cleanup task failed after %d retries. please check the system.", retries)
			SendEmail(
				os.Getenv("ADMIN_EMAIL"),
				"The scheduled cleanup task failed after multiple attempts.",
				"Cleanup Task Failed",
				"",
			)
		}
	})

	c.Start()
}
