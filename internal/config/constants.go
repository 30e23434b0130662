// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "hanyu_keep"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort            = ":8080"
	DefaultLogLevel              = "info"
	DefaultLogFormat             = "json"
	DefaultSessionMaxSize        = 50
	DefaultSessionTTLMinutes     = 120
	DefaultGoodMultiplier        = 2.0
	DefaultMaxIntervalDays       = 365
	DefaultStatsWindowDays       = 30
	DefaultRollupIntervalMinutes = 5
	DefaultReminderHourUTC       = 9
)
