package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sngm3741/restaurant-recs/api/internal/submission/application"
	"github.com/sngm3741/restaurant-recs/api/internal/submission/domain"
)

const submissionColumns = `id, restaurant_name, category, location, price_range, recommended_menu,
		review, submitter_name, submitter_email, status, image, created_at, updated_at`

const (
	listSubmissionsQuery = `
		SELECT ` + submissionColumns + `
		FROM submissions
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at, id
	`
	getSubmissionQuery = `
		SELECT ` + submissionColumns + `
		FROM submissions
		WHERE id = $1
	`
	insertSubmissionQuery = `
		INSERT INTO submissions (` + submissionColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`
	updateSubmissionQuery = `
		UPDATE submissions
		SET restaurant_name = COALESCE($2, restaurant_name),
			category = COALESCE($3, category),
			location = COALESCE($4, location),
			price_range = COALESCE($5, price_range),
			recommended_menu = COALESCE($6, recommended_menu),
			review = COALESCE($7, review),
			submitter_name = COALESCE($8, submitter_name),
			submitter_email = COALESCE($9, submitter_email),
			status = COALESCE($10, status),
			updated_at = $11
		WHERE id = $1 AND ($10::text IS NULL OR status <> 'approved')
		RETURNING ` + submissionColumns
	deleteSubmissionQuery     = `DELETE FROM submissions WHERE id = $1`
	transitionSubmissionQuery = `
		UPDATE submissions
		SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2
		RETURNING ` + submissionColumns
	submissionExistsQuery = `SELECT EXISTS (SELECT 1 FROM submissions WHERE id = $1)`
)

// SubmissionRepository stores submissions in PostgreSQL.
type SubmissionRepository struct {
	db *sql.DB
}

var _ application.SubmissionRepository = (*SubmissionRepository)(nil)

func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Find(ctx context.Context, filter application.SubmissionFilter) ([]domain.Submission, error) {
	rows, err := r.db.QueryContext(ctx, listSubmissionsQuery, filter.Status)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Submission, 0)
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*domain.Submission, error) {
	s, err := scanSubmission(r.db.QueryRowContext(ctx, getSubmissionQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("get submission %s: %w", id, err)
	}
	return &s, nil
}

func (r *SubmissionRepository) Create(ctx context.Context, s *domain.Submission) error {
	id := s.ID
	if id == "" {
		id = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
		s.UpdatedAt = s.CreatedAt
	}
	_, err := r.db.ExecContext(ctx, insertSubmissionQuery,
		id, s.RestaurantName, s.Category, s.Location, s.PriceRange,
		pq.Array(domain.NormaliseMenu(s.RecommendedMenu)),
		s.Review, s.SubmitterName, s.SubmitterEmail, s.Status.String(), s.Image,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	s.ID = id
	return nil
}

func (r *SubmissionRepository) Update(ctx context.Context, id string, patch domain.SubmissionPatch) (*domain.Submission, error) {
	var menu any
	if patch.RecommendedMenu != nil {
		menu = pq.Array(domain.NormaliseMenu(*patch.RecommendedMenu))
	}
	var status *string
	if patch.Status != nil {
		value := patch.Status.String()
		status = &value
	}

	row := r.db.QueryRowContext(ctx, updateSubmissionQuery,
		id, patch.RestaurantName, patch.Category, patch.Location, patch.PriceRange,
		menu, patch.Review, patch.SubmitterName, patch.SubmitterEmail, status,
		time.Now().UTC(),
	)
	s, err := scanSubmission(row)
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update submission %s: %w", id, err)
	}
	if status == nil {
		return nil, domain.ErrSubmissionNotFound
	}
	return nil, r.missingOrNotPending(ctx, id)
}

func (r *SubmissionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteSubmissionQuery, id)
	if err != nil {
		return fmt.Errorf("delete submission %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete submission %s: %w", id, err)
	}
	if n == 0 {
		return domain.ErrSubmissionNotFound
	}
	return nil
}

// TransitionStatus runs a guarded UPDATE; zero rows means the id is missing
// or the status has already moved on.
func (r *SubmissionRepository) TransitionStatus(ctx context.Context, id string, from, to domain.Status) (*domain.Submission, error) {
	row := r.db.QueryRowContext(ctx, transitionSubmissionQuery, id, from.String(), to.String(), time.Now().UTC())
	s, err := scanSubmission(row)
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transition submission %s: %w", id, err)
	}
	return nil, r.missingOrNotPending(ctx, id)
}

// missingOrNotPending explains why a guarded UPDATE matched no row.
func (r *SubmissionRepository) missingOrNotPending(ctx context.Context, id string) error {
	var exists bool
	if err := r.db.QueryRowContext(ctx, submissionExistsQuery, id).Scan(&exists); err != nil {
		return fmt.Errorf("check submission %s: %w", id, err)
	}
	if !exists {
		return domain.ErrSubmissionNotFound
	}
	return domain.ErrSubmissionNotPending
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (domain.Submission, error) {
	var (
		s      domain.Submission
		menu   []string
		status string
	)
	err := row.Scan(
		&s.ID, &s.RestaurantName, &s.Category, &s.Location, &s.PriceRange, pq.Array(&menu),
		&s.Review, &s.SubmitterName, &s.SubmitterEmail, &status, &s.Image,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return domain.Submission{}, err
	}
	s.RecommendedMenu = domain.NormaliseMenu(menu)
	s.Status = domain.Status(status)
	return s, nil
}
