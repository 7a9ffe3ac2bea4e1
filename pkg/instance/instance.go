package instance

import (
	"github.com/lucasmedrano/tourmarket-backend/pkg/env"
)

const defaultID = "worker-0"

// GetID identifies this worker process, used to tag logs when several
// replicas contend for the cron lock.
func GetID() string {
	return env.Get("WORKER_ID", defaultID)
}
