package activitylog

import "context"

type ActivityLogRepository interface {
	Create(ctx context.Context, log Log) (Log, error)
	List(ctx context.Context, filter LogFilter) ([]Log, int64, error)
	ListActions(ctx context.Context) ([]string, error)
	ListActors(ctx context.Context) ([]Actor, error)
}
