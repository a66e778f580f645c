package model

// Earnings summarizes completed-booking income over standard windows.
type Earnings struct {
	TotalEarnings            float64 `json:"total_earnings"`
	MonthlyEarnings          float64 `json:"monthly_earnings"`
	WeeklyEarnings           float64 `json:"weekly_earnings"`
	DailyEarnings            float64 `json:"daily_earnings"`
	TotalCompletedBookings   int     `json:"total_completed_bookings"`
	MonthlyCompletedBookings int     `json:"monthly_completed_bookings"`
	AverageBookingValue      float64 `json:"average_booking_value"`
}

// MonthlyEarnings is one entry of the trailing 12-month breakdown.
type MonthlyEarnings struct {
	Month             string  `json:"month"`
	Year              int     `json:"year"`
	MonthNumber       int     `json:"month_number"`
	Earnings          float64 `json:"earnings"`
	BookingsCompleted int     `json:"bookings_completed"`
}

type EarningsBreakdown struct {
	TotalEarnings        float64           `json:"total_earnings"`
	MonthlyBreakdown     []MonthlyEarnings `json:"monthly_breakdown"`
	HighestMonthEarnings float64           `json:"highest_month_earnings"`
	HighestEarningMonth  string            `json:"highest_earning_month"`
}

// NurseDashboard is the aggregate view behind GET /nurse/dashboard.
type NurseDashboard struct {
	TotalBookings       int     `json:"total_bookings"`
	ActiveBookings      int     `json:"active_bookings"`
	CompletedBookings   int     `json:"completed_bookings"`
	PendingBookings     int     `json:"pending_bookings"`
	TotalEarnings       float64 `json:"total_earnings"`
	MonthlyEarnings     float64 `json:"monthly_earnings"`
	AverageRating       float64 `json:"average_rating"`
	TotalReviews        int     `json:"total_reviews"`
	UnreadNotifications int     `json:"unread_notifications"`
}
