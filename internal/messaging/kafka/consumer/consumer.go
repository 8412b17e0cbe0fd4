package consumer

import (
	"context"
	"encoding/json"
	"time"

	"hris-leave/internal/employee"
	"hris-leave/internal/events"
	"hris-leave/internal/shared/apperror"

	"github.com/cenkalti/backoff/v4"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer loop needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// newRetryBackOff paces both fetch retries and storage retries. It never
// gives up on its own; only ctx ends a retry.
var newRetryBackOff = func() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 0
	return b
}

// ConsumeEmployeeLifecycle keeps the employee directory in step with the HR
// service. Undecodable or invalid events are committed and skipped. A
// storage failure is retried on the same message until it applies or ctx
// ends, and nothing after it is fetched meanwhile, so its offset is never
// committed past.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	directory employee.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	fetchBackOff := backoff.WithContext(newRetryBackOff(), ctx)
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			wait := fetchBackOff.NextBackOff()
			log.Error("fetch employee lifecycle message failed",
				zap.Duration("retry_in", wait),
				zap.Error(err),
			)
			if !sleep(ctx, wait) {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			continue
		}
		fetchBackOff.Reset()

		if !handleMessage(ctx, reader, directory, msg, log) {
			log.Info("employee lifecycle consumer stopped")
			return
		}
	}
}

// handleMessage applies one message and commits it. It returns false when
// ctx ended before the message could be applied.
func handleMessage(
	ctx context.Context,
	reader MessageReader,
	directory employee.Service,
	msg kafkago.Message,
	log *zap.Logger,
) bool {
	var event events.EmployeeLifecycleEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode employee lifecycle event failed",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		commit(ctx, reader, msg, log)
		return true
	}

	fields := []zap.Field{
		zap.Int64("offset", msg.Offset),
		zap.String("employee_id", event.EmployeeID),
		zap.String("event_type", event.EventType),
	}

	var applied bool
	err := backoff.RetryNotify(
		func() error {
			ok, err := directory.ApplyLifecycleEvent(ctx, event)
			if err != nil {
				if apperror.IsKind(err, apperror.CodeInvalidInput) {
					return backoff.Permanent(err)
				}
				return err
			}
			applied = ok
			return nil
		},
		backoff.WithContext(newRetryBackOff(), ctx),
		func(err error, wait time.Duration) {
			log.Error("apply employee lifecycle event failed, retrying",
				append(fields, zap.Duration("retry_in", wait), zap.Error(err))...)
		},
	)
	if err != nil {
		if !apperror.IsKind(err, apperror.CodeInvalidInput) {
			log.Warn("employee lifecycle event left uncommitted", append(fields, zap.Error(err))...)
			return false
		}
		log.Warn("invalid employee lifecycle event, skipping", append(fields, zap.Error(err))...)
		commit(ctx, reader, msg, log)
		return true
	}

	commit(ctx, reader, msg, log)
	log.Info("employee lifecycle event consumed", append(fields, zap.Bool("applied", applied))...)
	return true
}

// commit failures are only logged: a later commit covers the offset.
func commit(ctx context.Context, reader MessageReader, msg kafkago.Message, log *zap.Logger) {
	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit employee lifecycle message failed",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d == backoff.Stop {
		return false
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
