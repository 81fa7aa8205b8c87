package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Component records the emitting package under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// SubscriptionID records a subscription identifier under "subscription_id".
func SubscriptionID(id string) slog.Attr {
	return slog.String("subscription_id", id)
}

// Topic records a bus topic under "topic".
func Topic(name string) slog.Attr {
	return slog.String("topic", name)
}

// TaskID records a worker pool task sequence number under "task_id".
func TaskID(id uint64) slog.Attr {
	return slog.Uint64("task_id", id)
}

// Workers records a worker count under "workers".
func Workers(n int) slog.Attr {
	return slog.Int("workers", n)
}

// Duration records a duration under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
