package models

import "time"

// DashboardStats holds the headline counters for the dashboard.
type DashboardStats struct {
	TotalInterns   int `json:"totalInterns"`
	ActiveInterns  int `json:"activeInterns"`
	PendingTasks   int `json:"pendingTasks"`
	CompletedTasks int `json:"completedTasks"`
	OverdueTasks   int `json:"overdueTasks"`
}

// DepartmentCount is one row of the per-department intern breakdown.
type DepartmentCount struct {
	Department  string `json:"department"`
	InternCount int    `json:"internCount"`
}

// DepartmentStat is the analytics variant of the breakdown, carrying a chart color.
type DepartmentStat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// TopPerformer ranks an active intern by task completion.
type TopPerformer struct {
	InternID          string  `json:"internId"`
	FullName          string  `json:"fullName"`
	Department        string  `json:"department"`
	CompletedTasks    int     `json:"completedTasks"`
	TotalTasks        int     `json:"totalTasks"`
	CompletionRate    float64 `json:"completionRate"`
	AvgCompletionDays float64 `json:"avgCompletionDays"`
}

// ActivityItem is one entry of the merged recent-activity feed.
type ActivityItem struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // "intern_joined", "task_completed", "task_overdue"
	Message   string    `json:"message"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

// MonthlyGrowth counts interns and tasks created within one calendar month.
type MonthlyGrowth struct {
	Month   string `json:"month"`
	Interns int    `json:"interns"`
	Tasks   int    `json:"tasks"`
}

// PerformanceMetric holds per-department completion and efficiency scores.
type PerformanceMetric struct {
	Department string  `json:"department"`
	Completion float64 `json:"completion"`
	Efficiency float64 `json:"efficiency"`
}

// DailyActivity is one day of the trailing-week activity series.
type DailyActivity struct {
	Date      string `json:"date"`
	Active    int    `json:"active"`
	Joined    int    `json:"joined"`
	Completed int    `json:"completed"`
}

// AnalyticsData is the full analytics document.
type AnalyticsData struct {
	TotalInterns       int                 `json:"totalInterns"`
	ActiveInterns      int                 `json:"activeInterns"`
	InactiveInterns    int                 `json:"inactiveInterns"`
	CompletedTasks     int                 `json:"completedTasks"`
	PendingTasks       int                 `json:"pendingTasks"`
	OverdueTasks       int                 `json:"overdueTasks"`
	DepartmentStats    []DepartmentStat    `json:"departmentStats"`
	MonthlyGrowth      []MonthlyGrowth     `json:"monthlyGrowth"`
	PerformanceMetrics []PerformanceMetric `json:"performanceMetrics"`
	RecentActivity     []DailyActivity     `json:"recentActivity"`
}
