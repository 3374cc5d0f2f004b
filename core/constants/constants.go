package constants

import "time"

// Context keys
const (
	ContextTokenData = "token_data"
	ContextRequestID = "request_id"
	ContextRawToken  = "raw_token"
)

// Timeouts
const (
	DefaultRequestTimeout = 10 * time.Second
	DefaultTimeout        = 5 * time.Second
	ShutdownTimeout       = 10 * time.Second
	PublishTimeout        = 3 * time.Second
)

// Database pool
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 10
	DatabaseConnMaxLifetime = 30 // minutes
)

// Token scopes and roles
const (
	ScopeTokenAccess = "access"

	RoleUser  = 1
	RoleAdmin = 2
)

// Login throttling
const (
	MaxLoginAttempts = 5
	BlockDuration    = 15 * time.Minute
)

// Redis keys and channels
const (
	RedisKeyTokenBlacklist  = "token:blacklist:"
	RedisKeyLoginAttempt    = "login:attempt:"
	RedisKeyRecommendation  = "recommendation:"
	ChannelMeetingPrefix    = "meeting:"
	ChannelNotificationUser = "notifications:user:"
	ChannelNotificationAll  = "notifications:all"
	ChannelNotificationEvt  = "notifications:event:"
)

// Pagination
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 20
	MaxPageSize       = 100

	DefaultMessageLimit = 50
	MaxMessageLimit     = 200
)

// Events
const (
	EventCodeLength   = 6
	EventCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	JoinPath          = "/client/events/join"
)

// Uploads
const (
	MaxUploadSize      = 5 << 20
	MaxImageDimension  = 1600
	RecommendationTTL  = 60 * time.Second
	RecommendationSize = 20
)
