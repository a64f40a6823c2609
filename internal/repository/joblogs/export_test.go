package joblogs

// RetryClassifier decides whether a failed delivery is retried.
type RetryClassifier = retryClassifier
