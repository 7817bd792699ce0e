package models

// Deadline is a single dated event on a semester's internship calendar
type Deadline struct {
	Type        string `json:"type"`
	Month       string `json:"month"`
	MonthNumber int    `json:"month_number"`
	Description string `json:"description"`
}

// CalendarWindow is a semester's internship calendar relative to a month
type CalendarWindow struct {
	Semester          int        `json:"semester"`
	Focus             string     `json:"focus"`
	Description       string     `json:"description"`
	Recommendation    string     `json:"recommendation"`
	ApplyWindow       string     `json:"apply_window,omitempty"`
	InternshipPeriod  string     `json:"internship_period,omitempty"`
	ApplyMonths       []int      `json:"apply_months,omitempty"`
	InternshipMonths  []int      `json:"internship_months,omitempty"`
	CurrentStatus     string     `json:"current_status"`
	UpcomingDeadlines []Deadline `json:"upcoming_deadlines"`
}

// PreparationWindow tells a student how long they have until applications open.
// The pointer fields are nil for skill-building semesters.
type PreparationWindow struct {
	Semester           int      `json:"semester"`
	CurrentMonth       int      `json:"current_month"`
	TargetMonth        *int     `json:"target_month"`
	MonthsToPrepare    *int     `json:"months_to_prepare"`
	WeeksToPrepare     *int     `json:"weeks_to_prepare"`
	PreparationStatus  string   `json:"preparation_status"`
	RecommendedActions []string `json:"recommended_actions"`
}
