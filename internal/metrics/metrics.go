package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelResult  = "result"
	LabelStore   = "store"
	LabelType    = "type"
	LabelItem    = "item"
	LabelEnemy   = "enemy"
	LabelOutcome = "outcome"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pet_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pet_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pet_http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)
)

// Storage Metrics
var (
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pet_cache_lookups_total",
			Help: "Store cache lookups by store and hit/miss",
		},
		[]string{LabelStore, LabelResult},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pet_events_published_total",
			Help: "Game events published to subscribers",
		},
		[]string{LabelType},
	)
)

// Game Metrics
var (
	GamesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pet_games_created_total",
			Help: "Games started",
		},
	)

	BattlesFinished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pet_battles_finished_total",
			Help: "Battles finished by enemy type and outcome",
		},
		[]string{LabelEnemy, LabelOutcome},
	)

	ItemsBought = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pet_items_bought_total",
			Help: "Shop items bought",
		},
		[]string{LabelItem},
	)

	ActivitiesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pet_activities_completed_total",
			Help: "Town activities completed",
		},
		[]string{LabelItem},
	)

	CoinsEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pet_coins_earned_total",
			Help: "Coins earned from battles, school, math and treasure",
		},
	)

	CoinsSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pet_coins_spent_total",
			Help: "Coins spent in town",
		},
	)
)
