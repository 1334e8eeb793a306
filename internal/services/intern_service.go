package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/internhq/internhub-be/internal/models"
)

// InternServiceProvider defines the interface for intern services.
type InternServiceProvider interface {
	ListInterns(page, limit int, search, department string) ([]models.Intern, int, error)
	GetInternByID(id string) (models.Intern, error)
	CreateIntern(intern models.Intern) (models.Intern, error)
	UpdateIntern(id string, update models.InternUpdate) (models.Intern, error)
	DeleteIntern(id string) error
}

// InternService provides business logic for intern management.
type InternService struct {
	db            *sql.DB
	notifications NotificationServiceProvider
}

// NewInternService creates a new InternService.
func NewInternService(db *sql.DB, notifications NotificationServiceProvider) *InternService {
	return &InternService{db: db, notifications: notifications}
}

const internColumns = `id, full_name, email, phone, department, position, university,
	skills_json, status, join_date, created_at, updated_at`

func scanIntern(scanner interface{ Scan(...interface{}) error }) (models.Intern, error) {
	var intern models.Intern
	var phone, position, university, skills sql.NullString
	err := scanner.Scan(
		&intern.ID, &intern.FullName, &intern.Email, &phone, &intern.Department,
		&position, &university, &skills, &intern.Status,
		&intern.JoinDate, &intern.CreatedAt, &intern.UpdatedAt,
	)
	if err != nil {
		return models.Intern{}, err
	}
	intern.Phone = phone.String
	intern.Position = position.String
	intern.University = university.String
	intern.SkillsJSON = skills.String
	intern.PrepareForAPI()
	return intern, nil
}

// ListInterns returns one page of interns plus the total match count. Search
// matches the full name or email; department filters exactly.
func (s *InternService) ListInterns(page, limit int, search, department string) ([]models.Intern, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	where := "WHERE 1=1"
	var args []interface{}
	if search != "" {
		where += " AND (full_name LIKE ? OR email LIKE ?)"
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}
	if department != "" {
		where += " AND department = ?"
		args = append(args, department)
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM interns "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + internColumns + " FROM interns " + where + " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	rows, err := s.db.Query(query, append(args, limit, (page-1)*limit)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var interns []models.Intern
	for rows.Next() {
		intern, err := scanIntern(rows)
		if err != nil {
			return nil, 0, err
		}
		interns = append(interns, intern)
	}
	return interns, total, rows.Err()
}

// GetInternByID retrieves a single intern by ID.
func (s *InternService) GetInternByID(id string) (models.Intern, error) {
	row := s.db.QueryRow("SELECT "+internColumns+" FROM interns WHERE id = ?", id)
	intern, err := scanIntern(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Intern{}, fmt.Errorf("%w: intern %s", models.ErrNotFound, id)
		}
		return models.Intern{}, err
	}
	return intern, nil
}

// CreateIntern creates a new intern record.
func (s *InternService) CreateIntern(intern models.Intern) (models.Intern, error) {
	intern.FullName = strings.TrimSpace(intern.FullName)
	intern.Email = strings.TrimSpace(intern.Email)

	if intern.FullName == "" {
		return models.Intern{}, fmt.Errorf("%w: full name is required", models.ErrValidation)
	}
	if !strings.Contains(intern.Email, "@") {
		return models.Intern{}, fmt.Errorf("%w: invalid email address", models.ErrValidation)
	}
	if intern.Department == "" {
		return models.Intern{}, fmt.Errorf("%w: department is required", models.ErrValidation)
	}

	var existing string
	err := s.db.QueryRow("SELECT id FROM interns WHERE email = ?", intern.Email).Scan(&existing)
	if err == nil {
		return models.Intern{}, fmt.Errorf("%w: email already registered", models.ErrConflict)
	}
	if err != sql.ErrNoRows {
		return models.Intern{}, err
	}

	now := time.Now().UTC()
	intern.ID = uuid.New().String()
	if intern.Status == "" {
		intern.Status = models.InternStatusActive
	}
	if intern.JoinDate.IsZero() {
		intern.JoinDate = now
	}
	intern.CreatedAt = now
	intern.UpdatedAt = now
	intern.PrepareForDB()

	stmt, err := s.db.Prepare(`INSERT INTO interns (id, full_name, email, phone, department, position, university, skills_json, status, join_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return models.Intern{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(intern.ID, intern.FullName, intern.Email, intern.Phone, intern.Department,
		intern.Position, intern.University, intern.SkillsJSON, intern.Status,
		intern.JoinDate, intern.CreatedAt, intern.UpdatedAt)
	if err != nil {
		return models.Intern{}, err
	}

	s.notifications.CreateNotification("intern_created", "New intern",
		fmt.Sprintf("%s joined the %s department", intern.FullName, intern.Department), models.PriorityMedium)

	return s.GetInternByID(intern.ID)
}

// UpdateIntern applies a partial update to an intern.
func (s *InternService) UpdateIntern(id string, update models.InternUpdate) (models.Intern, error) {
	intern, err := s.GetInternByID(id)
	if err != nil {
		return models.Intern{}, err
	}

	if update.FullName != nil {
		intern.FullName = strings.TrimSpace(*update.FullName)
	}
	if update.Email != nil {
		intern.Email = strings.TrimSpace(*update.Email)
	}
	if update.Phone != nil {
		intern.Phone = *update.Phone
	}
	if update.Department != nil {
		intern.Department = *update.Department
	}
	if update.Position != nil {
		intern.Position = *update.Position
	}
	if update.University != nil {
		intern.University = *update.University
	}
	if update.Skills != nil {
		intern.Skills = *update.Skills
	}
	if update.Status != nil {
		if *update.Status != models.InternStatusActive && *update.Status != models.InternStatusInactive {
			return models.Intern{}, fmt.Errorf("%w: invalid status %q", models.ErrValidation, *update.Status)
		}
		intern.Status = *update.Status
	}

	if update.Email != nil {
		var other string
		err := s.db.QueryRow("SELECT id FROM interns WHERE email = ? AND id != ?", intern.Email, id).Scan(&other)
		if err == nil {
			return models.Intern{}, fmt.Errorf("%w: email already registered", models.ErrConflict)
		}
		if err != sql.ErrNoRows {
			return models.Intern{}, err
		}
	}

	intern.UpdatedAt = time.Now().UTC()
	intern.PrepareForDB()

	_, err = s.db.Exec(`UPDATE interns SET full_name = ?, email = ?, phone = ?, department = ?, position = ?, university = ?, skills_json = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		intern.FullName, intern.Email, intern.Phone, intern.Department, intern.Position,
		intern.University, intern.SkillsJSON, intern.Status, intern.UpdatedAt, id)
	if err != nil {
		return models.Intern{}, err
	}
	return s.GetInternByID(id)
}

// DeleteIntern removes an intern. The schema cascades the delete to the
// intern's tasks.
func (s *InternService) DeleteIntern(id string) error {
	res, err := s.db.Exec("DELETE FROM interns WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: intern %s", models.ErrNotFound, id)
	}
	return nil
}
