package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"landlord_portal_backend/platform/cache"
	"landlord_portal_backend/platform/config"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	geocodeMaxRetry  = 5
	geocodeTimeout   = time.Minute
	geocodeRetention = 24 * time.Hour
)

type Client struct {
	client *asynq.Client
	queue  string
}

// GeocodeScheduler queues background geocoding for a property.
type GeocodeScheduler interface {
	EnqueuePropertyGeocode(ctx context.Context, propertyID uuid.UUID) error
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queueName(cfg),
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueuePropertyGeocode queues a geocode task. The task id is derived from
// the property, so a property already queued, or geocoded within the
// retention window, is not queued twice.
func (c *Client) EnqueuePropertyGeocode(ctx context.Context, propertyID uuid.UUID) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewGeocodePropertyTask(GeocodePropertyPayload{PropertyID: propertyID.String()})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(c.queue),
		asynq.TaskID(geocodeTaskID(propertyID)),
		asynq.MaxRetry(geocodeMaxRetry),
		asynq.Timeout(geocodeTimeout),
		asynq.Retention(geocodeRetention),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	return err
}

func geocodeTaskID(propertyID uuid.UUID) string {
	return "property-geocode:" + propertyID.String()
}

func queueName(cfg config.SchedulerConfig) string {
	if queue := cfg.GetAsynqQueueName(); queue != "" {
		return queue
	}
	return "default"
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := cache.ParseRedisURL(redisURL, tlsInsecure)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}

var _ GeocodeScheduler = (*Client)(nil)
