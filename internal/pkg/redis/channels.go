package redis

import "fmt"

const (
	// ChannelJobLogsPrefix is the prefix for worker-specific formatted log channels.
	ChannelJobLogsPrefix = "job_logs_formatted:"
)

// GetJobLogsChannel returns the worker-specific channel name for streaming formatted logs.
func GetJobLogsChannel(worker string) string {
	return fmt.Sprintf("%s%s", ChannelJobLogsPrefix, worker)
}
