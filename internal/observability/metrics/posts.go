package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PostsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scribe_posts_created_total",
			Help: "Total number of posts created",
		},
	)

	PostsUpdatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scribe_posts_updated_total",
			Help: "Total number of posts updated",
		},
	)

	PostsDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scribe_posts_deleted_total",
			Help: "Total number of posts deleted",
		},
	)

	OwnershipDeniedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scribe_post_ownership_denied_total",
			Help: "Total number of post mutations rejected on ownership",
		},
	)

	FeedClientsConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "scribe_feed_clients_connected",
			Help: "Number of websocket feed clients currently connected",
		},
	)

	FeedPostsBroadcastTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scribe_feed_posts_broadcast_total",
			Help: "Total number of posts broadcast to the live feed",
		},
	)
)
