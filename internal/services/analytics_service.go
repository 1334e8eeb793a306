package services

import (
	"database/sql"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/internhq/internhub-be/internal/models"
)

// AnalyticsServiceProvider defines the interface for dashboard and analytics
// aggregations.
type AnalyticsServiceProvider interface {
	GetDashboardStats() (models.DashboardStats, error)
	GetDepartmentStats() ([]models.DepartmentCount, error)
	GetTopPerformers(limit int) ([]models.TopPerformer, error)
	GetRecentActivities(limit int) ([]models.ActivityItem, error)
	GetAnalytics(timeRange string) (models.AnalyticsData, error)
}

// AnalyticsService computes read-only aggregations over interns, tasks, and
// users. Each response is composed of several independent queries with no
// surrounding transaction; a torn snapshot under concurrent writes is
// accepted for dashboard use.
type AnalyticsService struct {
	db *sql.DB
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(db *sql.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// Chart palette cycled over departments in group order.
var departmentColors = []string{"#3b82f6", "#10b981", "#f59e0b", "#ef4444", "#8b5cf6", "#06b6d4"}

func (s *AnalyticsService) count(query string, args ...interface{}) (int, error) {
	var n int
	err := s.db.QueryRow(query, args...).Scan(&n)
	return n, err
}

// GetDashboardStats returns the headline counters.
func (s *AnalyticsService) GetDashboardStats() (models.DashboardStats, error) {
	var stats models.DashboardStats
	var err error

	if stats.TotalInterns, err = s.count("SELECT COUNT(*) FROM interns"); err != nil {
		return stats, err
	}
	if stats.ActiveInterns, err = s.count("SELECT COUNT(*) FROM interns WHERE status = ?", models.InternStatusActive); err != nil {
		return stats, err
	}
	if stats.PendingTasks, err = s.count("SELECT COUNT(*) FROM tasks WHERE status = ?", models.TaskStatusPending); err != nil {
		return stats, err
	}
	if stats.CompletedTasks, err = s.count("SELECT COUNT(*) FROM tasks WHERE status = ?", models.TaskStatusCompleted); err != nil {
		return stats, err
	}
	if stats.OverdueTasks, err = s.count("SELECT COUNT(*) FROM tasks WHERE status = ?", models.TaskStatusOverdue); err != nil {
		return stats, err
	}
	return stats, nil
}

// GetDepartmentStats groups interns by department with a count per group.
func (s *AnalyticsService) GetDepartmentStats() ([]models.DepartmentCount, error) {
	rows, err := s.db.Query("SELECT department, COUNT(*) FROM interns GROUP BY department ORDER BY department")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.DepartmentCount
	for rows.Next() {
		var dc models.DepartmentCount
		if err := rows.Scan(&dc.Department, &dc.InternCount); err != nil {
			return nil, err
		}
		stats = append(stats, dc)
	}
	return stats, rows.Err()
}

// completionDays is the completion time of a task in days, floored at one.
func completionDays(created, updated time.Time) int {
	days := int(updated.Sub(created).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return days
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// GetTopPerformers ranks active interns with at least one completed task by
// completion rate, then completed count, descending.
func (s *AnalyticsService) GetTopPerformers(limit int) ([]models.TopPerformer, error) {
	rows, err := s.db.Query(`SELECT i.id, i.full_name, i.department, t.status, t.created_at, t.updated_at
		FROM interns i JOIN tasks t ON t.intern_id = i.id
		WHERE i.status = ?`, models.InternStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type tally struct {
		performer models.TopPerformer
		totalDays int
		timed     int
	}
	byIntern := make(map[string]*tally)
	var order []string

	for rows.Next() {
		var internID, fullName, department, status string
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&internID, &fullName, &department, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		t, ok := byIntern[internID]
		if !ok {
			t = &tally{performer: models.TopPerformer{InternID: internID, FullName: fullName, Department: department}}
			byIntern[internID] = t
			order = append(order, internID)
		}
		t.performer.TotalTasks++
		if status == models.TaskStatusCompleted {
			t.performer.CompletedTasks++
			t.totalDays += completionDays(createdAt, updatedAt)
			t.timed++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var performers []models.TopPerformer
	for _, id := range order {
		t := byIntern[id]
		if t.performer.CompletedTasks == 0 {
			continue
		}
		t.performer.CompletionRate = round1(float64(t.performer.CompletedTasks) / float64(t.performer.TotalTasks) * 100)
		if t.timed > 0 {
			t.performer.AvgCompletionDays = round1(float64(t.totalDays) / float64(t.timed))
		}
		performers = append(performers, t.performer)
	}

	sort.SliceStable(performers, func(a, b int) bool {
		if performers[a].CompletionRate != performers[b].CompletionRate {
			return performers[a].CompletionRate > performers[b].CompletionRate
		}
		return performers[a].CompletedTasks > performers[b].CompletedTasks
	})

	if len(performers) > limit {
		performers = performers[:limit]
	}
	return performers, nil
}

// GetRecentActivities merges interns joined in the last 7 days, tasks
// completed in the last 7 days, and all currently overdue tasks into one
// feed, newest first.
func (s *AnalyticsService) GetRecentActivities(limit int) ([]models.ActivityItem, error) {
	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	var items []models.ActivityItem

	rows, err := s.db.Query("SELECT id, full_name, created_at FROM interns WHERE created_at >= ?", weekAgo)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var item models.ActivityItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Timestamp); err != nil {
			rows.Close()
			return nil, err
		}
		item.Type = "intern_joined"
		item.Message = "New intern joined"
		items = append(items, item)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`SELECT t.id, i.full_name, t.updated_at
		FROM tasks t JOIN interns i ON i.id = t.intern_id
		WHERE t.status = ? AND t.updated_at >= ?`, models.TaskStatusCompleted, weekAgo)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var item models.ActivityItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Timestamp); err != nil {
			rows.Close()
			return nil, err
		}
		item.Type = "task_completed"
		item.Message = fmt.Sprintf("%s completed task", item.Name)
		items = append(items, item)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Overdue entries sort on the task deadline so they interleave sensibly
	// with the datetime entries above.
	rows, err = s.db.Query(`SELECT t.id, i.full_name, t.title, t.deadline
		FROM tasks t JOIN interns i ON i.id = t.intern_id
		WHERE t.status = ?`, models.TaskStatusOverdue)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var item models.ActivityItem
		var title string
		if err := rows.Scan(&item.ID, &item.Name, &title, &item.Timestamp); err != nil {
			rows.Close()
			return nil, err
		}
		item.Type = "task_overdue"
		item.Message = fmt.Sprintf("Task %q is overdue", title)
		items = append(items, item)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(a, b int) bool {
		return items[a].Timestamp.After(items[b].Timestamp)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// GetAnalytics computes the full analytics document. The time range
// parameter is accepted for the API surface but every aggregate is computed
// over the whole data set, as in the system this replaces.
func (s *AnalyticsService) GetAnalytics(timeRange string) (models.AnalyticsData, error) {
	var data models.AnalyticsData
	var err error

	if data.TotalInterns, err = s.count("SELECT COUNT(*) FROM interns"); err != nil {
		return data, err
	}
	if data.ActiveInterns, err = s.count("SELECT COUNT(*) FROM interns WHERE status = ?", models.InternStatusActive); err != nil {
		return data, err
	}
	data.InactiveInterns = data.TotalInterns - data.ActiveInterns

	if data.CompletedTasks, err = s.count("SELECT COUNT(*) FROM tasks WHERE status = ?", models.TaskStatusCompleted); err != nil {
		return data, err
	}
	if data.PendingTasks, err = s.count("SELECT COUNT(*) FROM tasks WHERE status = ?", models.TaskStatusPending); err != nil {
		return data, err
	}
	if data.OverdueTasks, err = s.count("SELECT COUNT(*) FROM tasks WHERE status = ?", models.TaskStatusOverdue); err != nil {
		return data, err
	}

	departments, err := s.GetDepartmentStats()
	if err != nil {
		return data, err
	}
	data.DepartmentStats = make([]models.DepartmentStat, 0, len(departments))
	for i, dept := range departments {
		data.DepartmentStats = append(data.DepartmentStats, models.DepartmentStat{
			Name:  dept.Department,
			Value: dept.InternCount,
			Color: departmentColors[i%len(departmentColors)],
		})
	}

	if data.MonthlyGrowth, err = s.monthlyGrowth(); err != nil {
		return data, err
	}
	if data.PerformanceMetrics, err = s.departmentPerformance(departments); err != nil {
		return data, err
	}
	if data.RecentActivity, err = s.dailyActivity(); err != nil {
		return data, err
	}
	return data, nil
}

// monthlyGrowth counts interns and tasks created in each of the trailing six
// calendar months, oldest first.
func (s *AnalyticsService) monthlyGrowth() ([]models.MonthlyGrowth, error) {
	now := time.Now().UTC()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	growth := make([]models.MonthlyGrowth, 0, 6)
	for i := 5; i >= 0; i-- {
		start := firstOfMonth.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)

		interns, err := s.count("SELECT COUNT(*) FROM interns WHERE created_at >= ? AND created_at < ?", start, end)
		if err != nil {
			return nil, err
		}
		tasks, err := s.count("SELECT COUNT(*) FROM tasks WHERE created_at >= ? AND created_at < ?", start, end)
		if err != nil {
			return nil, err
		}

		growth = append(growth, models.MonthlyGrowth{
			Month:   start.Format("Jan 2006"),
			Interns: interns,
			Tasks:   tasks,
		})
	}
	return growth, nil
}

// departmentPerformance computes completion rate and efficiency per
// department over all its interns' tasks. Efficiency decays linearly with
// average completion time and bottoms out at zero from ten days up.
func (s *AnalyticsService) departmentPerformance(departments []models.DepartmentCount) ([]models.PerformanceMetric, error) {
	rows, err := s.db.Query(`SELECT i.department, t.status, t.created_at, t.updated_at
		FROM tasks t JOIN interns i ON i.id = t.intern_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type tally struct {
		total     int
		completed int
		totalDays int
		timed     int
	}
	byDept := make(map[string]*tally)

	for rows.Next() {
		var department, status string
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&department, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		t, ok := byDept[department]
		if !ok {
			t = &tally{}
			byDept[department] = t
		}
		t.total++
		if status == models.TaskStatusCompleted {
			t.completed++
			t.totalDays += completionDays(createdAt, updatedAt)
			t.timed++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	metrics := make([]models.PerformanceMetric, 0, len(departments))
	for _, dept := range departments {
		metric := models.PerformanceMetric{Department: dept.Department}
		if t, ok := byDept[dept.Department]; ok && t.total > 0 {
			metric.Completion = round1(float64(t.completed) / float64(t.total) * 100)
			if t.timed > 0 {
				avg := float64(t.totalDays) / float64(t.timed)
				metric.Efficiency = round1(100 - math.Min(avg*10, 100))
			}
		}
		metrics = append(metrics, metric)
	}
	return metrics, nil
}

// dailyActivity counts, for each of the trailing seven days, active interns
// updated that day, interns created that day, and tasks completed that day.
// Oldest day first.
func (s *AnalyticsService) dailyActivity() ([]models.DailyActivity, error) {
	now := time.Now().UTC()

	activity := make([]models.DailyActivity, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, 1)

		active, err := s.count("SELECT COUNT(*) FROM interns WHERE status = ? AND updated_at >= ? AND updated_at < ?",
			models.InternStatusActive, start, end)
		if err != nil {
			return nil, err
		}
		joined, err := s.count("SELECT COUNT(*) FROM interns WHERE created_at >= ? AND created_at < ?", start, end)
		if err != nil {
			return nil, err
		}
		completed, err := s.count("SELECT COUNT(*) FROM tasks WHERE status = ? AND updated_at >= ? AND updated_at < ?",
			models.TaskStatusCompleted, start, end)
		if err != nil {
			return nil, err
		}

		activity = append(activity, models.DailyActivity{
			Date:      start.Format("2006-01-02"),
			Active:    active,
			Joined:    joined,
			Completed: completed,
		})
	}
	return activity, nil
}
