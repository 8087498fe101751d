package config

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/bsm/redislock"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

var (
	rdb    *redis.Client
	locker *redislock.Client
)
var ctx = context.Background()

func GetRedisDB() *redis.Client {
	return rdb
}

func GetRedisLock() *redislock.Client {
	return locker
}

func init() {
	// Load env from .env
	godotenv.Load()
}

// ConnectRedis connects and sets the global Redis client + lock client.
// Redis is optional for this job (it only backs the run lock): when
// REDIS_ADDRESS is unset the clients stay nil and callers must treat them
// as absent.
func ConnectRedis() error {
	redisAddr := strings.TrimSpace(os.Getenv("REDIS_ADDRESS"))
	if redisAddr == "" {
		log.Printf("REDIS_ADDRESS not set; run lock disabled")
		return nil
	}

	maxAttempts := intFromEnv("REDIS_CONNECT_MAX_ATTEMPTS", 3)
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		rdb = redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: "",
			DB:       0, // use default DB
			PoolSize: 10,
		})
		if err := rdb.Ping(ctx).Err(); err == nil {
			locker = redislock.New(rdb)
			log.Printf("connected to redis (attempt=%d addr=%s)", attempt, redisAddr)
			return nil
		} else {
			lastErr = err
			sleep := time.Second * time.Duration(1<<min(attempt, 5))
			log.Printf("failed to connect redis (attempt=%d/%d addr=%s): %v; retrying in %s", attempt, maxAttempts, redisAddr, err, sleep)
			if attempt < maxAttempts {
				time.Sleep(sleep)
			}
		}
	}
	rdb = nil
	return lastErr
}
