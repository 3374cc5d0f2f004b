package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/neimd2025/web-ndrop-sub000/core/logger"

	"github.com/hibiken/asynq"
)

const (
	TypeNotificationDeliver   = "notification:deliver"
	TypeParticipantsReconcile = "participants:reconcile"

	QueueDefault = "default"
	QueueLow     = "low"

	ReconcileSchedule = "@every 15m"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func (c RedisConfig) opt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: c.Addr, Password: c.Password, DB: c.DB}
}

// Enqueuer is what services depend on to schedule background work.
type Enqueuer interface {
	Enqueue(ctx context.Context, taskType string, payload any, opts ...asynq.Option) error
}

type Client struct {
	client *asynq.Client
}

func NewClient(cfg RedisConfig) *Client {
	return &Client{client: asynq.NewClient(cfg.opt())}
}

func (c *Client) Enqueue(ctx context.Context, taskType string, payload any, opts ...asynq.Option) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", taskType, err)
	}
	info, err := c.client.EnqueueContext(ctx, asynq.NewTask(taskType, b), opts...)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}
	logger.Debug("Queue:Enqueue", "type", taskType, "id", info.ID, "queue", info.Queue)
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Worker runs task handlers and the periodic scheduler.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
}

func NewWorker(cfg RedisConfig, concurrency int) *Worker {
	server := asynq.NewServer(cfg.opt(), asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			QueueDefault: 6,
			QueueLow:     1,
		},
		Logger: asynqLogger{},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error("Queue:Task:Failed", "type", task.Type(), "error", err)
		}),
	})
	return &Worker{
		server:    server,
		scheduler: asynq.NewScheduler(cfg.opt(), &asynq.SchedulerOpts{Logger: asynqLogger{}}),
		mux:       asynq.NewServeMux(),
	}
}

func (w *Worker) HandleFunc(taskType string, fn func(ctx context.Context, task *asynq.Task) error) {
	w.mux.HandleFunc(taskType, fn)
}

// Every registers a periodic task on the scheduler.
func (w *Worker) Every(cronspec, taskType string, opts ...asynq.Option) error {
	if _, err := w.scheduler.Register(cronspec, asynq.NewTask(taskType, nil), opts...); err != nil {
		return fmt.Errorf("register %s: %w", taskType, err)
	}
	return nil
}

func (w *Worker) Start() error {
	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("start asynq server: %w", err)
	}
	if err := w.scheduler.Start(); err != nil {
		w.server.Shutdown()
		return fmt.Errorf("start asynq scheduler: %w", err)
	}
	logger.Info("Queue:Worker:Started")
	return nil
}

func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
	logger.Info("Queue:Worker:Stopped")
}

// Decode unmarshals a task payload.
func Decode[T any](task *asynq.Task) (T, error) {
	var v T
	if err := json.Unmarshal(task.Payload(), &v); err != nil {
		return v, fmt.Errorf("decode %s payload: %w: %w", task.Type(), err, asynq.SkipRetry)
	}
	return v, nil
}

type asynqLogger struct{}

func (asynqLogger) Debug(args ...any) { logger.Debug(fmt.Sprint(args...)) }
func (asynqLogger) Info(args ...any)  { logger.Info(fmt.Sprint(args...)) }
func (asynqLogger) Warn(args ...any)  { logger.Warn(fmt.Sprint(args...)) }
func (asynqLogger) Error(args ...any) { logger.Error(fmt.Sprint(args...)) }
func (asynqLogger) Fatal(args ...any) {
	logger.Error(fmt.Sprint(args...))
	os.Exit(1)
}
