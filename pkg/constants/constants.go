// Package constants provides shared constants for the event-forecast application.
package constants

import "time"

// Attendance model constants
const (
	// MinBreakEvenPercent is the lower clamp for break-even attendance percentages
	MinBreakEvenPercent = 0.0

	// MaxBreakEvenPercent is the upper clamp for break-even attendance percentages
	MaxBreakEvenPercent = 200.0

	// FullAttendancePercent is the attendance level used for capacity based figures
	FullAttendancePercent = 100
)

// AttendanceLevels are the canonical occupancy levels every scenario is evaluated at.
var AttendanceLevels = []int{25, 50, 75, 100}

// Food consumption model constants
const (
	// EventDays is the number of days the event spans
	EventDays = 4

	// AttendeeMealDays is the number of days of meals consumed by a GA attendee
	AttendeeMealDays = 4

	// StaffMealDays is the number of days of meals consumed by a staff member
	StaffMealDays = 4

	// DayPassMealDays is the number of days of meals consumed by a day-pass holder
	DayPassMealDays = 1

	// FoodCategory is the canonical budget category holding food costs
	FoodCategory = "Food & Beverage"
)

// UncategorizedCategory is used for line items without a category.
const UncategorizedCategory = "Uncategorized"

// Financial constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerReadTimeout bounds how long the server waits for a request
	DefaultServerReadTimeout = 15 * time.Second

	// DefaultServerWriteTimeout bounds how long the server spends writing a response
	DefaultServerWriteTimeout = 60 * time.Second

	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
