package constants

import "time"

const (
	UsernameMinLength  = 4
	UsernameMaxLength  = 32
	PasswordMinLength  = 6
	PasswordMaxLength  = 72
	TitleMaxLength     = 200
	ContentMaxLength   = 20000
	JWTSecretMinLength = 32

	BcryptCost = 10

	DefaultMaxRequestSize = 1 << 20

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = 1 * time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = 1 * time.Second
	DBPoolMetricsInterval = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultHTTPPort       = "8080"
	DefaultRequestTimeout = 5 * time.Second
	DefaultAccessTokenTTL = 30 * time.Minute

	RateLimitSignupRequestsPerSecond  = 1.0
	RateLimitSignupBurst              = 3
	RateLimitSigninRequestsPerSecond  = 2.0
	RateLimitSigninBurst              = 5
	RateLimitGeneralRequestsPerSecond = 50.0
	RateLimitGeneralBurst             = 100
	RateLimitCleanupInterval          = 10 * time.Minute

	FeedSendBufferSize  = 256
	FeedWriteWait       = 10 * time.Second
	FeedPongWait        = 60 * time.Second
	FeedPingPeriod      = (FeedPongWait * 9) / 10
	FeedMaxMessageSize  = 4096
	FeedReadBufferSize  = 1024
	FeedWriteBufferSize = 1024

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
