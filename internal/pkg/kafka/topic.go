package kafka

const (
	// TopicJobLogs is the name of the Kafka topic for raw job log events.
	TopicJobLogs = "job_logs"
	// TopicJobLogsFormatted is the name of the Kafka topic for formatted job log lines.
	TopicJobLogsFormatted = "job_logs_formatted"
)
