package services_test

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/internhq/internhub-be/internal/models"
	"github.com/internhq/internhub-be/internal/services"
	"github.com/stretchr/testify/require"
)

func newAnalyticsService(t *testing.T) (*services.AnalyticsService, *sql.DB) {
	t.Helper()
	db := newTestDB(t)
	return services.NewAnalyticsService(db), db
}

func TestDashboardStats(t *testing.T) {
	svc, db := newAnalyticsService(t)

	now := time.Now().UTC()
	a := insertIntern(t, db, "A", "a@example.com", "Eng", models.InternStatusActive, now, now)
	insertIntern(t, db, "B", "b@example.com", "Eng", models.InternStatusInactive, now, now)

	insertTask(t, db, a, models.TaskStatusPending, now, now)
	insertTask(t, db, a, models.TaskStatusPending, now, now)
	insertTask(t, db, a, models.TaskStatusCompleted, now, now)
	insertTask(t, db, a, models.TaskStatusOverdue, now, now)

	stats, err := svc.GetDashboardStats()
	require.NoError(t, err)
	require.Equal(t, models.DashboardStats{
		TotalInterns:   2,
		ActiveInterns:  1,
		PendingTasks:   2,
		CompletedTasks: 1,
		OverdueTasks:   1,
	}, stats)
}

func TestDepartmentStats(t *testing.T) {
	svc, db := newAnalyticsService(t)

	now := time.Now().UTC()
	insertIntern(t, db, "A", "a@example.com", "Engineering", models.InternStatusActive, now, now)
	insertIntern(t, db, "B", "b@example.com", "Engineering", models.InternStatusActive, now, now)
	insertIntern(t, db, "C", "c@example.com", "Marketing", models.InternStatusActive, now, now)

	stats, err := svc.GetDepartmentStats()
	require.NoError(t, err)
	require.Equal(t, []models.DepartmentCount{
		{Department: "Engineering", InternCount: 2},
		{Department: "Marketing", InternCount: 1},
	}, stats)
}

func TestTopPerformers_CompletionRate(t *testing.T) {
	svc, db := newAnalyticsService(t)

	now := time.Now().UTC()
	internID := insertIntern(t, db, "Jane", "jane@example.com", "Eng", models.InternStatusActive, now, now)
	insertTask(t, db, internID, models.TaskStatusCompleted, now.AddDate(0, 0, -2), now)
	insertTask(t, db, internID, models.TaskStatusCompleted, now.AddDate(0, 0, -2), now)
	insertTask(t, db, internID, models.TaskStatusPending, now, now)

	performers, err := svc.GetTopPerformers(5)
	require.NoError(t, err)
	require.Len(t, performers, 1)
	require.Equal(t, 66.7, performers[0].CompletionRate)
	require.Equal(t, 2, performers[0].CompletedTasks)
	require.Equal(t, 3, performers[0].TotalTasks)
	require.Equal(t, 2.0, performers[0].AvgCompletionDays)
}

func TestTopPerformers_OrderingAndCap(t *testing.T) {
	svc, db := newAnalyticsService(t)
	now := time.Now().UTC()

	// completed/total per intern; rates 100, 100, 75, 50, 33.3, 25.
	shapes := []struct {
		name      string
		completed int
		total     int
	}{
		{"A", 2, 2},
		{"B", 1, 1},
		{"C", 3, 4},
		{"D", 1, 2},
		{"E", 1, 3},
		{"F", 1, 4},
	}
	for i, shape := range shapes {
		id := insertIntern(t, db, shape.name, fmt.Sprintf("%d@example.com", i), "Eng", models.InternStatusActive, now, now)
		for j := 0; j < shape.total; j++ {
			status := models.TaskStatusPending
			if j < shape.completed {
				status = models.TaskStatusCompleted
			}
			insertTask(t, db, id, status, now.AddDate(0, 0, -1), now)
		}
	}

	// Excluded: an active intern with no completed task, and an inactive
	// intern with a perfect record.
	noneDone := insertIntern(t, db, "NoneDone", "nd@example.com", "Eng", models.InternStatusActive, now, now)
	insertTask(t, db, noneDone, models.TaskStatusPending, now, now)
	inactive := insertIntern(t, db, "Gone", "gone@example.com", "Eng", models.InternStatusInactive, now, now)
	insertTask(t, db, inactive, models.TaskStatusCompleted, now.AddDate(0, 0, -1), now)

	performers, err := svc.GetTopPerformers(5)
	require.NoError(t, err)
	require.Len(t, performers, 5, "capped at five entries")

	var names []string
	for _, p := range performers {
		names = append(names, p.FullName)
	}
	// Equal rates tie-break on completed count, descending.
	require.Equal(t, []string{"A", "B", "C", "D", "E"}, names)
}

func TestRecentActivities(t *testing.T) {
	svc, db := newAnalyticsService(t)
	now := time.Now().UTC()

	joined := insertIntern(t, db, "Jane", "jane@example.com", "Eng", models.InternStatusActive, now.Add(-48*time.Hour), now.Add(-48*time.Hour))
	insertTask(t, db, joined, models.TaskStatusCompleted, now.AddDate(0, 0, -5), now.Add(-24*time.Hour))

	// Overdue tasks appear regardless of age, keyed on their deadline.
	overdueIntern := insertIntern(t, db, "Old", "old@example.com", "Eng", models.InternStatusActive, now.AddDate(0, -2, 0), now.AddDate(0, -2, 0))
	_, err := db.Exec(`INSERT INTO tasks (id, intern_id, title, description, deadline, status, created_at, updated_at)
		VALUES ('overdue-task', ?, 'late report', '', ?, ?, ?, ?)`,
		overdueIntern, now.Add(-72*time.Hour), models.TaskStatusOverdue, now.AddDate(0, -1, 0), now.AddDate(0, -1, 0))
	require.NoError(t, err)

	// Too old for the joined window.
	insertIntern(t, db, "Ancient", "ancient@example.com", "Eng", models.InternStatusActive, now.AddDate(0, 0, -10), now.AddDate(0, 0, -10))

	items, err := svc.GetRecentActivities(10)
	require.NoError(t, err)
	require.Len(t, items, 3)

	// Newest first: completed task (1d), joined intern (2d), overdue deadline (3d).
	require.Equal(t, "task_completed", items[0].Type)
	require.Equal(t, "intern_joined", items[1].Type)
	require.Equal(t, "task_overdue", items[2].Type)

	for i := 1; i < len(items); i++ {
		require.False(t, items[i].Timestamp.After(items[i-1].Timestamp), "feed must be sorted descending")
	}
}

func TestRecentActivities_Cap(t *testing.T) {
	svc, db := newAnalyticsService(t)
	now := time.Now().UTC()

	for i := 0; i < 12; i++ {
		insertIntern(t, db, fmt.Sprintf("I%d", i), fmt.Sprintf("i%d@example.com", i), "Eng", models.InternStatusActive, now, now)
	}

	items, err := svc.GetRecentActivities(10)
	require.NoError(t, err)
	require.Len(t, items, 10)
}

func TestAnalytics_MonthlyGrowth(t *testing.T) {
	svc, db := newAnalyticsService(t)
	now := time.Now().UTC()

	insertIntern(t, db, "New", "new@example.com", "Eng", models.InternStatusActive, now, now)
	// Created before the six-month window; must not be counted.
	insertIntern(t, db, "Old", "old@example.com", "Eng", models.InternStatusActive, now.AddDate(0, -7, 0), now.AddDate(0, -7, 0))

	data, err := svc.GetAnalytics("30d")
	require.NoError(t, err)
	require.Len(t, data.MonthlyGrowth, 6, "always exactly six entries")

	// Oldest first; the current month is last and contains the new intern.
	last := data.MonthlyGrowth[5]
	require.Equal(t, now.Format("Jan 2006"), last.Month)
	require.Equal(t, 1, last.Interns)

	var totalCounted int
	for _, m := range data.MonthlyGrowth {
		totalCounted += m.Interns
	}
	require.Equal(t, 1, totalCounted)
}

func TestAnalytics_PerformanceMetrics(t *testing.T) {
	svc, db := newAnalyticsService(t)
	now := time.Now().UTC()

	eng := insertIntern(t, db, "Jane", "jane@example.com", "Engineering", models.InternStatusActive, now, now)
	insertTask(t, db, eng, models.TaskStatusCompleted, now.AddDate(0, 0, -2), now)
	insertTask(t, db, eng, models.TaskStatusCompleted, now.AddDate(0, 0, -2), now)
	insertTask(t, db, eng, models.TaskStatusPending, now, now)

	// A department with zero tasks across all its interns.
	insertIntern(t, db, "Mark", "mark@example.com", "Legal", models.InternStatusActive, now, now)

	data, err := svc.GetAnalytics("30d")
	require.NoError(t, err)
	require.Len(t, data.PerformanceMetrics, 2)

	byDept := map[string]models.PerformanceMetric{}
	for _, m := range data.PerformanceMetrics {
		byDept[m.Department] = m
	}

	engMetric := byDept["Engineering"]
	require.Equal(t, 66.7, engMetric.Completion)
	// avg completion 2 days -> 100 - 2*10.
	require.Equal(t, 80.0, engMetric.Efficiency)

	legal := byDept["Legal"]
	require.Equal(t, 0.0, legal.Completion)
	require.Equal(t, 0.0, legal.Efficiency)
}

func TestAnalytics_EfficiencySaturates(t *testing.T) {
	svc, db := newAnalyticsService(t)
	now := time.Now().UTC()

	slow := insertIntern(t, db, "Slow", "slow@example.com", "Ops", models.InternStatusActive, now, now)
	insertTask(t, db, slow, models.TaskStatusCompleted, now.AddDate(0, 0, -15), now)

	data, err := svc.GetAnalytics("30d")
	require.NoError(t, err)
	require.Len(t, data.PerformanceMetrics, 1)
	require.Equal(t, 0.0, data.PerformanceMetrics[0].Efficiency, "efficiency bottoms out at ten days average")
}

func TestAnalytics_TotalsAndDepartmentColors(t *testing.T) {
	svc, db := newAnalyticsService(t)
	now := time.Now().UTC()

	insertIntern(t, db, "A", "a@example.com", "Engineering", models.InternStatusActive, now, now)
	insertIntern(t, db, "B", "b@example.com", "Marketing", models.InternStatusInactive, now, now)

	data, err := svc.GetAnalytics("7d")
	require.NoError(t, err)
	require.Equal(t, 2, data.TotalInterns)
	require.Equal(t, 1, data.ActiveInterns)
	require.Equal(t, 1, data.InactiveInterns)

	require.Len(t, data.DepartmentStats, 2)
	require.Equal(t, "#3b82f6", data.DepartmentStats[0].Color)
	require.Equal(t, "#10b981", data.DepartmentStats[1].Color)
}

func TestAnalytics_DailyActivity(t *testing.T) {
	svc, db := newAnalyticsService(t)
	now := time.Now().UTC()

	id := insertIntern(t, db, "Jane", "jane@example.com", "Eng", models.InternStatusActive, now, now)
	insertTask(t, db, id, models.TaskStatusCompleted, now.AddDate(0, 0, -3), now)

	data, err := svc.GetAnalytics("30d")
	require.NoError(t, err)
	require.Len(t, data.RecentActivity, 7)

	// Oldest first; today is the last bucket.
	today := data.RecentActivity[6]
	require.Equal(t, now.Format("2006-01-02"), today.Date)
	require.Equal(t, 1, today.Joined)
	require.Equal(t, 1, today.Active)
	require.Equal(t, 1, today.Completed)
}
