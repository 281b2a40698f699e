package media

import (
	"errors"

	"socialhub/internal/pkg/mediafs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	filesIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialhub_media_files_ingested_total",
			Help: "Files stored by successful upload requests.",
		},
		[]string{"kind"},
	)

	ingestRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialhub_media_ingest_rejected_total",
			Help: "Upload requests that failed, by reason.",
		},
		[]string{"kind", "reason"},
	)

	ingestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "socialhub_media_ingest_duration_seconds",
			Help:    "Time spent draining an upload request body.",
			Buckets: []float64{.01, .05, .1, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"kind"},
	)

	storiesSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "socialhub_stories_swept_total",
		Help: "Expired story files deleted.",
	})

	storySweepFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "socialhub_story_sweep_failures_total",
		Help: "Story sweeps that failed or left files behind.",
	})
)

func rejectReason(err error) string {
	switch {
	case errors.Is(err, mediafs.ErrFileSizeTooBig):
		return "size"
	case errors.Is(err, mediafs.ErrIllegalContentType):
		return "content_type"
	case errors.Is(err, mediafs.ErrCorruptedHeaderLength), errors.Is(err, mediafs.ErrNotMultipart):
		return "malformed"
	case errors.Is(err, mediafs.ErrStreamAborted):
		return "aborted"
	case errors.Is(err, mediafs.ErrWriting):
		return "write"
	default:
		return "other"
	}
}
