package redis

import (
	"context"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"os"
	"strconv"
	"time"
)

// IRedis stores pending pairing invites keyed by the invited partner's
// email. The value is an opaque JSON payload owned by the couple service.
type IRedis interface {
	SetInvite(ctx context.Context, email string, payload string, expiration time.Duration) error
	GetInvite(ctx context.Context, email string) (string, error)
	DeleteInvite(ctx context.Context, email string) error
}

type redisClient struct {
	client *redis.Client
}

const inviteKeyPrefix = "invite:"

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

func (r *redisClient) SetInvite(ctx context.Context, email string, payload string, expiration time.Duration) error {
	err := r.client.Set(ctx, inviteKeyPrefix+email, payload, expiration).Err()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error setting invite for %s: %v", email, err))
		return err
	}
	return nil
}

func (r *redisClient) GetInvite(ctx context.Context, email string) (string, error) {
	val, err := r.client.Get(ctx, inviteKeyPrefix+email).Result()
	if errors.Is(err, redis.Nil) {
		logrus.Debug(fmt.Sprintf("No pending invite for %s", email))
		return "", err
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error getting invite for %s: %v", email, err))
		return "", err
	}
	return val, nil
}

func (r *redisClient) DeleteInvite(ctx context.Context, email string) error {
	result, err := r.client.Del(ctx, inviteKeyPrefix+email).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error deleting invite for %s: %v", email, err))
		return err
	}

	if result == 0 {
		logrus.Debug(fmt.Sprintf("Invite for %s already gone", email))
	}

	return nil
}
