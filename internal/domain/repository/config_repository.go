package repository

import "context"

// ConfigRepository persists ambient configuration key/value pairs backing
// internal/app/config, such as work_hours_start/work_hours_end (§2A, §6).
type ConfigRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)
}
