package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lms_backend"

var (
	votesCast = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "community",
		Name:      "votes_total",
		Help:      "Votes processed, labelled by outcome (created, flipped, already_voted, failed).",
	}, []string{"outcome"})

	highlightsRaised = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "community",
		Name:      "highlights_raised_total",
		Help:      "Posts that crossed the highlight threshold.",
	})

	adminNotifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "notifications",
		Name:      "admin_dispatch_total",
		Help:      "Admin highlight notifications, labelled by channel and result.",
	}, []string{"channel", "result"})

	activityLogged = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "activity",
		Name:      "events_total",
		Help:      "Activity log appends, labelled by action type and result.",
	}, []string{"action_type", "result"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route, method and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "status"})
)

func init() {
	prometheus.MustRegister(votesCast, highlightsRaised, adminNotifications, activityLogged, httpDuration)
}

// Vote outcomes
const (
	VoteCreated      = "created"
	VoteFlipped      = "flipped"
	VoteAlreadyVoted = "already_voted"
	VoteFailed       = "failed"
)

// RecordVote counts a processed vote.
func RecordVote(outcome string) {
	votesCast.WithLabelValues(outcome).Inc()
}

// RecordHighlight counts a highlight rising edge.
func RecordHighlight() {
	highlightsRaised.Inc()
}

// RecordAdminNotification counts one dispatch attempt on a channel ("push" or "inbox").
func RecordAdminNotification(channel string, err error) {
	adminNotifications.WithLabelValues(channel, result(err)).Inc()
}

// UnknownActionType labels appends rejected for an unrecognised action type,
// keeping caller input out of the label set.
const UnknownActionType = "unknown"

// RecordActivity counts an activity append.
func RecordActivity(actionType string, err error) {
	activityLogged.WithLabelValues(actionType, result(err)).Inc()
}

// EchoMiddleware observes request latency keyed by the matched route path.
func EchoMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			httpDuration.WithLabelValues(c.Path(), c.Request().Method, strconv.Itoa(status)).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
