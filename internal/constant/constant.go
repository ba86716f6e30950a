package constant

import "time"

// ResetWeekday is the weekday on which the weekly boss reset occurs.
// GMS resets on Thursday 00:00 UTC.
const ResetWeekday = time.Thursday

// Boss reset cadences.
const (
	ResetTypeDaily   = "daily"
	ResetTypeWeekly  = "weekly"
	ResetTypeMonthly = "monthly"
)

// XP table level coverage.
const (
	XPTableMinLevel = 200
	XPTableMaxLevel = 299
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	// DefaultMinSampleSize suppresses low-confidence drop rates on the
	// per-boss and per-item read endpoints.
	DefaultMinSampleSize = 10

	// LeaderboardMinSampleSize is the floor for the rarest-drops
	// leaderboard, which needs a larger sample to be meaningful.
	LeaderboardMinSampleSize = 50

	DefaultLeaderboardLimit = 20

	// DefaultXPStatsDays is the rolling window of the XP stats endpoint.
	DefaultXPStatsDays = 7
)

const (
	SessionTokenCookieKey = "gms_session"
	AdminKeyHeader        = "X-GMS-Admin-Key"

	RequestIDHeader = "X-GMS-Request-ID"
)

// ClearLockKey is the redsync mutex name prefix serializing the
// weekly-clear check-then-insert.
const ClearLockKey = "gms:lock:clear"

const ISODateFormat = "2006-01-02"
