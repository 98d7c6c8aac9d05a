package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/cvstudio/pkg/cv"
)

var _ cv.Repository = (*CVRepository)(nil)

// CVRepository хранит CV (секции в JSONB) и снимки версий.
type CVRepository struct {
	pool *pgxpool.Pool
}

func NewCVRepository(pool *pgxpool.Pool) *CVRepository {
	return &CVRepository{pool: pool}
}

const cvColumns = `id, owner_id, title, full_name, email, phone, location, linkedin_url, profile_summary, photo_path,
	personal_info, experiences, educations, projects, skills, languages, certifications, interests, custom_sections, theme,
	file_path, original_text, current_version, created_at, updated_at`

// cvRow is the column-level shape of a cvs row; JSONB columns stay raw.
type cvRow struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Title          string
	FullName       string
	Email          string
	Phone          string
	Location       string
	LinkedInURL    string
	ProfileSummary string
	PhotoPath      string
	PersonalInfo   []byte
	Experiences    []byte
	Educations     []byte
	Projects       []byte
	Skills         []byte
	Languages      []byte
	Certifications []byte
	Interests      []byte
	CustomSections []byte
	Theme          []byte
	FilePath       string
	OriginalText   string
	CurrentVersion int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (r *cvRow) dest() []any {
	return []any{&r.ID, &r.OwnerID, &r.Title, &r.FullName, &r.Email, &r.Phone, &r.Location, &r.LinkedInURL,
		&r.ProfileSummary, &r.PhotoPath, &r.PersonalInfo, &r.Experiences, &r.Educations, &r.Projects, &r.Skills,
		&r.Languages, &r.Certifications, &r.Interests, &r.CustomSections, &r.Theme, &r.FilePath, &r.OriginalText,
		&r.CurrentVersion, &r.CreatedAt, &r.UpdatedAt}
}

func (r *cvRow) args() []any {
	return []any{r.ID, r.OwnerID, r.Title, r.FullName, r.Email, r.Phone, r.Location, r.LinkedInURL,
		r.ProfileSummary, r.PhotoPath, r.PersonalInfo, r.Experiences, r.Educations, r.Projects, r.Skills,
		r.Languages, r.Certifications, r.Interests, r.CustomSections, r.Theme, r.FilePath, r.OriginalText,
		r.CurrentVersion, r.CreatedAt, r.UpdatedAt}
}

// encodeCV stores the projection so that every JSONB column has its
// canonical shape ([] and {} instead of null).
func encodeCV(c cv.CV) (cvRow, error) {
	p := c.Projection()
	row := cvRow{
		ID: p.ID, OwnerID: p.OwnerID, Title: p.Title, FullName: p.FullName, Email: p.Email, Phone: p.Phone,
		Location: p.Location, LinkedInURL: p.LinkedInURL, ProfileSummary: p.ProfileSummary, PhotoPath: p.PhotoPath,
		FilePath: p.FilePath, OriginalText: p.OriginalText, CurrentVersion: p.CurrentVersion,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
		Interests: p.Interests, CustomSections: p.CustomSections, Theme: p.Theme,
	}
	fields := []struct {
		dst *[]byte
		v   any
	}{
		{&row.PersonalInfo, p.PersonalInfo},
		{&row.Experiences, p.Experiences},
		{&row.Educations, p.Educations},
		{&row.Projects, p.Projects},
		{&row.Skills, p.Skills},
		{&row.Languages, p.Languages},
		{&row.Certifications, p.Certifications},
	}
	for _, f := range fields {
		b, err := json.Marshal(f.v)
		if err != nil {
			return cvRow{}, fmt.Errorf("encode cv %s: %w", p.ID, err)
		}
		*f.dst = b
	}
	return row, nil
}

func decodeCV(row cvRow) (cv.CV, error) {
	c := cv.CV{
		ID: row.ID, OwnerID: row.OwnerID, Title: row.Title, FullName: row.FullName, Email: row.Email,
		Phone: row.Phone, Location: row.Location, LinkedInURL: row.LinkedInURL, ProfileSummary: row.ProfileSummary,
		PhotoPath: row.PhotoPath, FilePath: row.FilePath, OriginalText: row.OriginalText,
		CurrentVersion: row.CurrentVersion, CreatedAt: row.CreatedAt.UTC(), UpdatedAt: row.UpdatedAt.UTC(),
		Interests: json.RawMessage(row.Interests), CustomSections: json.RawMessage(row.CustomSections),
		Theme: json.RawMessage(row.Theme),
	}
	fields := []struct {
		src []byte
		v   any
	}{
		{row.PersonalInfo, &c.PersonalInfo},
		{row.Experiences, &c.Experiences},
		{row.Educations, &c.Educations},
		{row.Projects, &c.Projects},
		{row.Skills, &c.Skills},
		{row.Languages, &c.Languages},
		{row.Certifications, &c.Certifications},
	}
	for _, f := range fields {
		if len(f.src) == 0 {
			continue
		}
		if err := json.Unmarshal(f.src, f.v); err != nil {
			return cv.CV{}, fmt.Errorf("decode cv %s: %w", row.ID, err)
		}
	}
	return c, nil
}

func scanCV(row pgx.Row) (cv.CV, error) {
	var r cvRow
	if err := row.Scan(r.dest()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cv.CV{}, cv.ErrNotFound
		}
		return cv.CV{}, err
	}
	return decodeCV(r)
}

func (r *CVRepository) Create(ctx context.Context, c cv.CV) (cv.CV, error) {
	row, err := encodeCV(c)
	if err != nil {
		return cv.CV{}, err
	}
	err = pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
INSERT INTO cvs (`+cvColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25)
`, row.args()...); err != nil {
			return err
		}
		return insertVersion(ctx, tx, c)
	})
	if err != nil {
		return cv.CV{}, err
	}
	return decodeCV(row)
}

func (r *CVRepository) Update(ctx context.Context, c cv.CV, expectedVersion int) (cv.CV, error) {
	row, err := encodeCV(c)
	if err != nil {
		return cv.CV{}, err
	}
	err = pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
UPDATE cvs SET title=$3, full_name=$4, email=$5, phone=$6, location=$7, linkedin_url=$8, profile_summary=$9,
	photo_path=$10, personal_info=$11, experiences=$12, educations=$13, projects=$14, skills=$15, languages=$16,
	certifications=$17, interests=$18, custom_sections=$19, theme=$20, file_path=$21, original_text=$22,
	current_version=$23, updated_at=$25
WHERE id=$1 AND owner_id=$2 AND current_version=$26
`, append(row.args(), expectedVersion)...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM cvs WHERE id=$1)`, c.ID).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return cv.ErrNotFound
			}
			return cv.ErrConflict
		}
		return insertVersion(ctx, tx, c)
	})
	if err != nil {
		return cv.CV{}, err
	}
	return decodeCV(row)
}

func insertVersion(ctx context.Context, tx pgx.Tx, c cv.CV) error {
	snapshot, err := json.Marshal(c.Projection())
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
INSERT INTO cv_versions (id, cv_id, version, snapshot, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (cv_id, version) DO NOTHING
`, uuid.New(), c.ID, c.CurrentVersion, snapshot, c.UpdatedAt)
	return err
}

func (r *CVRepository) GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (cv.CV, error) {
	return scanCV(r.pool.QueryRow(ctx, `SELECT `+cvColumns+` FROM cvs WHERE id = $1 AND owner_id = $2`, id, ownerID))
}

func (r *CVRepository) GetByIDAny(ctx context.Context, id uuid.UUID) (cv.CV, error) {
	return scanCV(r.pool.QueryRow(ctx, `SELECT `+cvColumns+` FROM cvs WHERE id = $1`, id))
}

func (r *CVRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]cv.CV, error) {
	return r.list(ctx, `SELECT `+cvColumns+` FROM cvs WHERE owner_id = $3 ORDER BY updated_at DESC LIMIT $1 OFFSET $2`,
		limit, offset, ownerID)
}

func (r *CVRepository) ListAll(ctx context.Context, limit, offset int) ([]cv.CV, error) {
	return r.list(ctx, `SELECT `+cvColumns+` FROM cvs ORDER BY updated_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *CVRepository) list(ctx context.Context, query string, limit, offset int, extra ...any) ([]cv.CV, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, query, append([]any{limit, offset}, extra...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []cv.CV{}
	for rows.Next() {
		c, err := scanCV(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

func (r *CVRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cvs WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return cv.ErrNotFound
	}
	return nil
}

func (r *CVRepository) DeleteAny(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cvs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return cv.ErrNotFound
	}
	return nil
}

func (r *CVRepository) ListVersions(ctx context.Context, cvID uuid.UUID, limit, offset int) ([]cv.Version, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, cv_id, version, snapshot, created_at
FROM cv_versions WHERE cv_id = $1
ORDER BY version DESC
LIMIT $2 OFFSET $3
`, cvID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []cv.Version{}
	for rows.Next() {
		var v cv.Version
		var snapshot []byte
		if err := rows.Scan(&v.ID, &v.CVID, &v.Version, &snapshot, &v.CreatedAt); err != nil {
			return nil, err
		}
		v.Snapshot = snapshot
		v.CreatedAt = v.CreatedAt.UTC()
		res = append(res, v)
	}
	return res, rows.Err()
}
