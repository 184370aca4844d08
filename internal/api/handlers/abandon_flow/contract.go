package abandon_flow

import "context"

type FlowService interface {
	Abandon(ctx context.Context, flowID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
