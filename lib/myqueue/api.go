package myqueue

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Task asks the queue to call back URLPath with Payload, once, after Delay
type Task struct {
	UID     string
	URLPath string
	Payload []byte
	Delay   time.Duration
}

// Attempts tells how often a task has been dispatched and how often it may be
type Attempts struct {
	Dispatched int32
	Max        int32
}

func (a Attempts) IsLast() bool {
	return a.Max > 0 && a.Dispatched >= a.Max
}

var New func(c context.Context) (TaskQueuer, func(), error)

//go:generate mockgen -source=api.go -package myqueue -destination queuer_mock.go TaskQueuer
type TaskQueuer interface {
	// Enqueue ignores a task whose UID was enqueued before
	Enqueue(c context.Context, task Task) error
	Attempts(c context.Context, taskUID string) (Attempts, error)
}

type queueConfig struct {
	projectID  string
	locationID string
	queueName  string
}

func queueConfigFromEnv() queueConfig {
	cfg := queueConfig{
		projectID:  os.Getenv("GOOGLE_CLOUD_PROJECT"),
		locationID: os.Getenv("LOCATION_ID"),
		queueName:  os.Getenv("QUEUE_NAME"),
	}
	if cfg.queueName == "" {
		cfg.queueName = "default"
	}
	return cfg
}

func (cfg queueConfig) queuePath() string {
	return fmt.Sprintf("projects/%s/locations/%s/queues/%s", cfg.projectID, cfg.locationID, cfg.queueName)
}

func (cfg queueConfig) taskPath(taskUID string) string {
	return fmt.Sprintf("%s/tasks/%s", cfg.queuePath(), taskUID)
}
