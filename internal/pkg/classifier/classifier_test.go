package classifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	joblogsmodel "github.com/hitesh22rana/jsonlogger/internal/model/joblogs"
	"github.com/hitesh22rana/jsonlogger/internal/pkg/classifier"
)

func floatPtr(f float64) *float64 {
	return &f
}

func statusPtr(s joblogsmodel.Status) *joblogsmodel.Status {
	return &s
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload joblogsmodel.Payload
		want    joblogsmodel.StatusRecord
	}{
		{
			name:    "error payload",
			payload: joblogsmodel.ErrorPayload{Message: "undefined method `foo' for nil"},
			want: joblogsmodel.StatusRecord{
				Status:  statusPtr(joblogsmodel.StatusException),
				Message: "undefined method `foo' for nil",
			},
		},
		{
			name:    "job outcome: retrying",
			payload: joblogsmodel.JobOutcomePayload{Class: "HardWorker", Args: `[1,"bob"]`, Retry: true},
			want: joblogsmodel.StatusRecord{
				Status:  statusPtr(joblogsmodel.StatusRetry),
				Message: `HardWorker failed, retrying with args [1,"bob"].`,
			},
		},
		{
			name:    "job outcome: dead",
			payload: joblogsmodel.JobOutcomePayload{Class: "HardWorker", Args: `[1,"bob"]`, Retry: false},
			want: joblogsmodel.StatusRecord{
				Status:  statusPtr(joblogsmodel.StatusDead),
				Message: `HardWorker failed with args [1,"bob"], not retrying.`,
			},
		},
		{
			name:    "text: start with run time",
			payload: joblogsmodel.TextPayload("start 1.5 extra"),
			want: joblogsmodel.StatusRecord{
				Status:  statusPtr(joblogsmodel.StatusStart),
				Message: "start 1.5 extra",
				RunTime: floatPtr(1.5),
			},
		},
		{
			name:    "text: done with colon and run time",
			payload: joblogsmodel.TextPayload("done: 0.123 sec"),
			want: joblogsmodel.StatusRecord{
				Status:  statusPtr(joblogsmodel.StatusDone),
				Message: "done: 0.123 sec",
				RunTime: floatPtr(0.123),
			},
		},
		{
			name:    "text: fail never carries run time",
			payload: joblogsmodel.TextPayload("fail 2.0"),
			want: joblogsmodel.StatusRecord{
				Status:  statusPtr(joblogsmodel.StatusFail),
				Message: "fail 2.0",
			},
		},
		{
			name:    "text: done without second token",
			payload: joblogsmodel.TextPayload("done"),
			want: joblogsmodel.StatusRecord{
				Status:  statusPtr(joblogsmodel.StatusDone),
				Message: "done",
			},
		},
		{
			name:    "text: unrelated free text",
			payload: joblogsmodel.TextPayload("unrelated free text"),
			want: joblogsmodel.StatusRecord{
				Message: "unrelated free text",
			},
		},
		{
			name:    "text: non numeric second token",
			payload: joblogsmodel.TextPayload("start now"),
			want: joblogsmodel.StatusRecord{
				Status:  statusPtr(joblogsmodel.StatusStart),
				Message: "start now",
			},
		},
		{
			name:    "text: numeric prefix of second token",
			payload: joblogsmodel.TextPayload("done 2.25s"),
			want: joblogsmodel.StatusRecord{
				Status:  statusPtr(joblogsmodel.StatusDone),
				Message: "done 2.25s",
				RunTime: floatPtr(2.25),
			},
		},
		{
			name:    "text: non finite run time is dropped",
			payload: joblogsmodel.TextPayload("done NaN"),
			want: joblogsmodel.StatusRecord{
				Status:  statusPtr(joblogsmodel.StatusDone),
				Message: "done NaN",
			},
		},
		{
			name:    "text: surrounding and repeated whitespace",
			payload: joblogsmodel.TextPayload("  start \t  3   "),
			want: joblogsmodel.StatusRecord{
				Status:  statusPtr(joblogsmodel.StatusStart),
				Message: "  start \t  3   ",
				RunTime: floatPtr(3),
			},
		},
		{
			name:    "text: status word must match exactly",
			payload: joblogsmodel.TextPayload("starting 1.0"),
			want: joblogsmodel.StatusRecord{
				Message: "starting 1.0",
			},
		},
		{
			name:    "text: only one trailing colon",
			payload: joblogsmodel.TextPayload("done:: 1.0"),
			want: joblogsmodel.StatusRecord{
				Message: "done:: 1.0",
			},
		},
		{
			name:    "text: status word is case sensitive",
			payload: joblogsmodel.TextPayload("DONE 1.0"),
			want: joblogsmodel.StatusRecord{
				Message: "DONE 1.0",
			},
		},
		{
			name:    "text: empty",
			payload: joblogsmodel.TextPayload(""),
			want:    joblogsmodel.StatusRecord{},
		},
		{
			name:    "text: whitespace only",
			payload: joblogsmodel.TextPayload(" \n\t "),
			want: joblogsmodel.StatusRecord{
				Message: " \n\t ",
			},
		},
		{
			name:    "text: non-ASCII space does not separate tokens",
			payload: joblogsmodel.TextPayload("done\u00a01.5"),
			want: joblogsmodel.StatusRecord{
				Message: "done\u00a01.5",
			},
		},
		{
			name:    "text: vertical tab and form feed separate tokens",
			payload: joblogsmodel.TextPayload("done\v\f2.5"),
			want: joblogsmodel.StatusRecord{
				Status:  statusPtr(joblogsmodel.StatusDone),
				Message: "done\v\f2.5",
				RunTime: floatPtr(2.5),
			},
		},
		{
			name:    "nil payload",
			payload: nil,
			want:    joblogsmodel.StatusRecord{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := classifier.Classify(tt.payload)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFields(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"HardWorker", "JID-1"}, classifier.Fields(" HardWorker\tJID-1\r\n"))
	assert.Equal(t, []string{"Hard\u00a0Worker", "JID-1"}, classifier.Fields("Hard\u00a0Worker JID-1"))
	assert.Empty(t, classifier.Fields(" \t "))
}

func TestClassify_Reclassification(t *testing.T) {
	t.Parallel()

	payloads := []joblogsmodel.Payload{
		joblogsmodel.ErrorPayload{Message: "done 1.0"},
		joblogsmodel.JobOutcomePayload{Class: "HardWorker", Args: "[]", Retry: true},
		joblogsmodel.TextPayload("start 1.5 extra"),
		joblogsmodel.TextPayload("unrelated free text"),
	}

	for _, payload := range payloads {
		first := classifier.Classify(payload)
		second := classifier.Classify(joblogsmodel.TextPayload(first.Message))
		require.Equal(t, first.Message, second.Message)
	}
}
