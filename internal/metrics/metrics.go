package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cms_login_attempts_total",
		Help: "Number of login attempts grouped by status.",
	}, []string{"status"})

	postMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cms_post_mutations_total",
		Help: "Number of post create/update/delete operations grouped by action and status.",
	}, []string{"action", "status"})

	postPublishes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cms_post_publishes_total",
		Help: "Number of posts transitioned into the published state.",
	})

	commentModerations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cms_comment_moderations_total",
		Help: "Number of comment moderation decisions grouped by new status.",
	}, []string{"status"})

	mediaUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cms_media_uploads_total",
		Help: "Number of media uploads grouped by classified file type.",
	}, []string{"file_type"})

	rateLimitHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cms_rate_limit_hits_total",
		Help: "Rate limiter activations grouped by limiter name.",
	}, []string{"limiter"})
)

// IncLogin increments the login counter.
func IncLogin(status string) {
	loginAttempts.WithLabelValues(status).Inc()
}

// IncPostMutation increments the post mutation counter.
func IncPostMutation(action, status string) {
	postMutations.WithLabelValues(action, status).Inc()
}

// IncPublish increments the publish counter.
func IncPublish() {
	postPublishes.Inc()
}

// IncModeration increments the comment moderation counter.
func IncModeration(status string) {
	commentModerations.WithLabelValues(status).Inc()
}

// IncMediaUpload increments the media upload counter.
func IncMediaUpload(fileType string) {
	mediaUploads.WithLabelValues(fileType).Inc()
}

// IncRateLimit increments the rate-limit hit counter.
func IncRateLimit(name string) {
	rateLimitHits.WithLabelValues(name).Inc()
}
