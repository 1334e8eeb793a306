package services_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/internhq/internhub-be/internal/models"
	"github.com/internhq/internhub-be/internal/services"
	"github.com/stretchr/testify/require"
)

func newInternService(t *testing.T) (*services.InternService, *sql.DB) {
	t.Helper()
	db := newTestDB(t)
	return services.NewInternService(db, services.NewNotificationService(db)), db
}

func TestCreateIntern(t *testing.T) {
	svc, _ := newInternService(t)

	intern, err := svc.CreateIntern(models.Intern{
		FullName:   "Jane Doe",
		Email:      "jane@example.com",
		Phone:      "555-0100",
		Department: "Engineering",
		Skills:     []string{"Go", "SQL"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, intern.ID)
	require.Equal(t, models.InternStatusActive, intern.Status, "status defaults to active")
	require.False(t, intern.JoinDate.IsZero(), "join date defaults to now")
	require.Equal(t, []string{"Go", "SQL"}, intern.Skills)
}

func TestCreateIntern_Validation(t *testing.T) {
	svc, _ := newInternService(t)

	_, err := svc.CreateIntern(models.Intern{Email: "a@b.c", Department: "Eng"})
	require.True(t, errors.Is(err, models.ErrValidation), "missing name")

	_, err = svc.CreateIntern(models.Intern{FullName: "X", Email: "bad", Department: "Eng"})
	require.True(t, errors.Is(err, models.ErrValidation), "bad email")

	_, err = svc.CreateIntern(models.Intern{FullName: "X", Email: "a@b.c"})
	require.True(t, errors.Is(err, models.ErrValidation), "missing department")
}

func TestCreateIntern_DuplicateEmail(t *testing.T) {
	svc, _ := newInternService(t)

	_, err := svc.CreateIntern(models.Intern{FullName: "Jane", Email: "jane@example.com", Department: "Eng"})
	require.NoError(t, err)

	_, err = svc.CreateIntern(models.Intern{FullName: "Other", Email: "jane@example.com", Department: "Sales"})
	require.True(t, errors.Is(err, models.ErrConflict))
}

func TestCreateIntern_EmitsNotification(t *testing.T) {
	svc, db := newInternService(t)

	_, err := svc.CreateIntern(models.Intern{FullName: "Jane", Email: "jane@example.com", Department: "Eng"})
	require.NoError(t, err)

	count, err := services.NewNotificationService(db).UnreadCount()
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestUpdateIntern(t *testing.T) {
	svc, _ := newInternService(t)

	intern, err := svc.CreateIntern(models.Intern{FullName: "Jane", Email: "jane@example.com", Department: "Eng"})
	require.NoError(t, err)

	status := models.InternStatusInactive
	position := "Backend"
	updated, err := svc.UpdateIntern(intern.ID, models.InternUpdate{Status: &status, Position: &position})
	require.NoError(t, err)
	require.Equal(t, models.InternStatusInactive, updated.Status)
	require.Equal(t, "Backend", updated.Position)
	require.Equal(t, "jane@example.com", updated.Email, "untouched fields keep their values")
	require.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	bad := "paused"
	_, err = svc.UpdateIntern(intern.ID, models.InternUpdate{Status: &bad})
	require.True(t, errors.Is(err, models.ErrValidation))
}

func TestUpdateIntern_EmailCollision(t *testing.T) {
	svc, _ := newInternService(t)

	_, err := svc.CreateIntern(models.Intern{FullName: "Jane", Email: "jane@example.com", Department: "Eng"})
	require.NoError(t, err)
	other, err := svc.CreateIntern(models.Intern{FullName: "Mark", Email: "mark@example.com", Department: "Eng"})
	require.NoError(t, err)

	taken := "jane@example.com"
	_, err = svc.UpdateIntern(other.ID, models.InternUpdate{Email: &taken})
	require.True(t, errors.Is(err, models.ErrConflict))
}

func TestDeleteIntern_CascadesTasks(t *testing.T) {
	svc, db := newInternService(t)

	intern, err := svc.CreateIntern(models.Intern{FullName: "Jane", Email: "jane@example.com", Department: "Eng"})
	require.NoError(t, err)

	now := time.Now().UTC()
	insertTask(t, db, intern.ID, models.TaskStatusPending, now, now)
	insertTask(t, db, intern.ID, models.TaskStatusCompleted, now, now)

	require.NoError(t, svc.DeleteIntern(intern.ID))

	var remaining int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM tasks WHERE intern_id = ?", intern.ID).Scan(&remaining))
	require.Equal(t, 0, remaining, "deleting an intern deletes its tasks")

	err = svc.DeleteIntern(intern.ID)
	require.True(t, errors.Is(err, models.ErrNotFound))
}

func TestListInterns(t *testing.T) {
	svc, _ := newInternService(t)

	for _, in := range []models.Intern{
		{FullName: "Jane Doe", Email: "jane@example.com", Department: "Engineering"},
		{FullName: "John Roe", Email: "john@example.com", Department: "Engineering"},
		{FullName: "Mary Major", Email: "mary@example.com", Department: "Marketing"},
	} {
		_, err := svc.CreateIntern(in)
		require.NoError(t, err)
	}

	interns, total, err := svc.ListInterns(1, 10, "", "")
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, interns, 3)

	// Department filter.
	interns, total, err = svc.ListInterns(1, 10, "", "Marketing")
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "Mary Major", interns[0].FullName)

	// Search matches name or email.
	_, total, err = svc.ListInterns(1, 10, "jane", "")
	require.NoError(t, err)
	require.Equal(t, 1, total)

	// Pagination: total counts all matches, the page is capped.
	interns, total, err = svc.ListInterns(1, 2, "", "")
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, interns, 2)

	interns, _, err = svc.ListInterns(2, 2, "", "")
	require.NoError(t, err)
	require.Len(t, interns, 1)
}
