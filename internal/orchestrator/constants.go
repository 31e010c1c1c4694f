package orchestrator

import (
	"os"
	"strconv"
	"time"
)

// Retry settings for GitHub API calls. Pushes are never retried.
var (
	DefaultRetryCount = envUint("TAG_DEPLOY_RETRY_COUNT", 3)
	DefaultRetryDelay = envDuration("TAG_DEPLOY_RETRY_DELAY", time.Second)
)

// FilePermissionsReadWrite is the permission used when creating the CI output file.
const FilePermissionsReadWrite = 0644

func envUint(name string, fallback uint64) uint64 {
	if n, err := strconv.ParseUint(os.Getenv(name), 10, 64); err == nil {
		return n
	}
	return fallback
}

func envDuration(name string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(name)); err == nil && d > 0 {
		return d
	}
	return fallback
}
