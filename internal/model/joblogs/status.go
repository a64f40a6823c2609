package joblogs

// Status is the normalized state of a job derived from a log payload.
type Status string

const (
	// StatusStart marks a job that began executing.
	StatusStart Status = "start"
	// StatusDone marks a job that finished successfully.
	StatusDone Status = "done"
	// StatusFail marks a job that failed.
	StatusFail Status = "fail"
	// StatusException marks an error value logged by the worker.
	StatusException Status = "exception"
	// StatusRetry marks a failed job that will be retried.
	StatusRetry Status = "retry"
	// StatusDead marks a failed job that will not be retried.
	StatusDead Status = "dead"
)

// StatusRecord is the classified form of a payload.
type StatusRecord struct {
	Status  *Status
	Message string
	// RunTime is the job run time in seconds, set only for start and done.
	RunTime *float64
}
