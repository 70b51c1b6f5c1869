package metrics

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters exposed at /metrics.
type Metrics struct {
	Requests       *prometheus.CounterVec
	PostsCreated   prometheus.Counter
	Connects       prometheus.Counter
	Likes          prometheus.Counter
	CommentsPosted prometheus.Counter
}

// Init registers and returns the metric set.
func Init() *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "devsync_http_requests_total",
				Help: "Total number of HTTP requests by path pattern and status code",
			},
			[]string{"path", "status"},
		),
		PostsCreated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "devsync_posts_created_total",
				Help: "Total number of posts created",
			},
		),
		Connects: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "devsync_connections_total",
				Help: "Total number of successful connect operations",
			},
		),
		Likes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "devsync_likes_total",
				Help: "Total number of successful likes",
			},
		),
		CommentsPosted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "devsync_comments_total",
				Help: "Total number of comments posted",
			},
		),
	}

	prometheus.MustRegister(m.Requests)
	prometheus.MustRegister(m.PostsCreated)
	prometheus.MustRegister(m.Connects)
	prometheus.MustRegister(m.Likes)
	prometheus.MustRegister(m.CommentsPosted)

	return m
}

// Middleware counts every request by path and status. The chi wrapper
// keeps Hijacker/Flusher working for websocket upgrades.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.Requests.WithLabelValues(r.URL.Path, strconv.Itoa(status)).Inc()
	})
}
