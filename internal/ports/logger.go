package ports

import "context"

// Logger is the logging surface every adapter and service receives.
// Fields are optional; only the first map is used.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...map[string]interface{})
	Info(ctx context.Context, msg string, fields ...map[string]interface{})
	Warn(ctx context.Context, msg string, fields ...map[string]interface{})
	// Error logs msg together with err at Error level.
	Error(ctx context.Context, err error, msg string, fields ...map[string]interface{})
}
