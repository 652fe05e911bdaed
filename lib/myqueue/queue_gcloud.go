package myqueue

import (
	"context"
	"fmt"
	"os"
	"time"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/MarcGrol/shopreconciler/lib/mylog"
)

type gcloudTaskQueue struct {
	logger mylog.Logger
	cfg    queueConfig
	client *cloudtasks.Client
}

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		New = newGcloudQueue
	}
}

func newGcloudQueue(c context.Context) (TaskQueuer, func(), error) {
	client, err := cloudtasks.NewClient(c)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating cloudtasks-client: %s", err)
	}
	return &gcloudTaskQueue{
			logger: mylog.New("cloudtasks"),
			cfg:    queueConfigFromEnv(),
			client: client,
		}, func() {
			client.Close()
		}, nil
}

func (q *gcloudTaskQueue) Enqueue(c context.Context, task Task) error {
	_, err := q.client.CreateTask(c, &taskspb.CreateTaskRequest{
		Parent: q.cfg.queuePath(),
		Task: &taskspb.Task{
			// Cloud Tasks refuses a second task with the same name
			Name:         q.cfg.taskPath(task.UID),
			ScheduleTime: timestamppb.New(time.Now().Add(task.Delay)),
			MessageType: &taskspb.Task_AppEngineHttpRequest{
				AppEngineHttpRequest: &taskspb.AppEngineHttpRequest{
					HttpMethod:  taskspb.HttpMethod_PUT,
					RelativeUri: task.URLPath,
					Body:        task.Payload,
				},
			},
		},
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			q.logger.Log(c, task.UID, mylog.SeverityDebug, "Task %s already enqueued", task.UID)
			return nil
		}
		return fmt.Errorf("error enqueueing task %s: %s", task.UID, err)
	}

	return nil
}

func (q *gcloudTaskQueue) Attempts(c context.Context, taskUID string) (Attempts, error) {
	attempts := Attempts{Max: -1}

	queue, err := q.client.GetQueue(c, &taskspb.GetQueueRequest{
		Name: q.cfg.queuePath(),
	})
	if err != nil {
		return attempts, fmt.Errorf("error getting queue %s: %s", q.cfg.queueName, err)
	}
	if queue.RetryConfig != nil {
		attempts.Max = queue.RetryConfig.MaxAttempts
	}

	task, err := q.client.GetTask(c, &taskspb.GetTaskRequest{
		Name: q.cfg.taskPath(taskUID),
	})
	if err != nil {
		return attempts, fmt.Errorf("error getting task %s: %s", taskUID, err)
	}
	attempts.Dispatched = task.DispatchCount

	return attempts, nil
}
