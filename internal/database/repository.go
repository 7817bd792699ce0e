package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/khrees2412/internly/pkg/models"
	"github.com/mattn/go-sqlite3"
)

// ErrDuplicateURL is returned when a listing's source URL is already stored
var ErrDuplicateURL = errors.New("a listing with this URL already exists")

// Lookups return (nil, nil) when the row does not exist.

func encodeList(values []string) string {
	if values == nil {
		values = []string{}
	}
	data, _ := json.Marshal(values)
	return string(data)
}

func decodeList(raw string) ([]string, error) {
	out := []string{}
	if raw == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

// Profile operations

// SaveProfile inserts or overwrites the profile. An empty ID gets a new UUID.
func SaveProfile(ctx context.Context, p *models.StudentProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.UpdatedAt = time.Now().UTC()

	query := `INSERT INTO profiles (id, semester, skills, preferred_roles, target_companies, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)
			  ON CONFLICT(id) DO UPDATE SET
				semester=excluded.semester,
				skills=excluded.skills,
				preferred_roles=excluded.preferred_roles,
				target_companies=excluded.target_companies,
				updated_at=excluded.updated_at`
	_, err := DB.ExecContext(ctx, query, p.ID, p.Semester, encodeList(p.Skills),
		encodeList(p.PreferredRoles), encodeList(p.TargetCompanies), p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// GetProfile returns the most recently updated profile
func GetProfile(ctx context.Context) (*models.StudentProfile, error) {
	query := `SELECT id, semester, skills, preferred_roles, target_companies, updated_at
			  FROM profiles ORDER BY updated_at DESC LIMIT 1`
	p := &models.StudentProfile{}
	var skills, roles, companies string
	err := DB.QueryRowContext(ctx, query).Scan(&p.ID, &p.Semester, &skills, &roles, &companies, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if p.Skills, err = decodeList(skills); err != nil {
		return nil, fmt.Errorf("corrupt skills for profile %s: %w", p.ID, err)
	}
	if p.PreferredRoles, err = decodeList(roles); err != nil {
		return nil, fmt.Errorf("corrupt roles for profile %s: %w", p.ID, err)
	}
	if p.TargetCompanies, err = decodeList(companies); err != nil {
		return nil, fmt.Errorf("corrupt companies for profile %s: %w", p.ID, err)
	}
	return p, nil
}

// Listing operations

const listingColumns = `id, title, company, company_domain, platform, location, duration, stipend,
			  required_skills, preferred_skills, responsibilities, application_deadline,
			  start_date, source_url, created_at`

// CreateListing validates and stores a new listing, assigning it a UUID
func CreateListing(ctx context.Context, l *models.InternshipListing) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO listings (` + listingColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := DB.ExecContext(ctx, query, l.ID, l.Title, l.Company,
		nullString(l.CompanyDomain), nullString(l.Platform), nullString(l.Location),
		nullString(l.Duration), nullString(l.Stipend),
		encodeList(l.RequiredSkills), encodeList(l.PreferredSkills), encodeList(l.Responsibilities),
		nullTime(l.ApplicationDeadline), nullTime(l.StartDate), nullString(l.SourceURL), l.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", ErrDuplicateURL, l.SourceURL)
	}
	if err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner) (*models.InternshipListing, error) {
	l := &models.InternshipListing{}
	var domain, platform, location, duration, stipend, sourceURL sql.NullString
	var required, preferred, responsibilities string
	var deadline, start sql.NullTime
	err := row.Scan(&l.ID, &l.Title, &l.Company, &domain, &platform, &location, &duration,
		&stipend, &required, &preferred, &responsibilities, &deadline, &start, &sourceURL, &l.CreatedAt)
	if err != nil {
		return nil, err
	}

	l.CompanyDomain = domain.String
	l.Platform = platform.String
	l.Location = location.String
	l.Duration = duration.String
	l.Stipend = stipend.String
	l.SourceURL = sourceURL.String
	if deadline.Valid {
		t := deadline.Time
		l.ApplicationDeadline = &t
	}
	if start.Valid {
		t := start.Time
		l.StartDate = &t
	}

	if l.RequiredSkills, err = decodeList(required); err != nil {
		return nil, fmt.Errorf("corrupt required skills for listing %s: %w", l.ID, err)
	}
	if l.PreferredSkills, err = decodeList(preferred); err != nil {
		return nil, fmt.Errorf("corrupt preferred skills for listing %s: %w", l.ID, err)
	}
	if l.Responsibilities, err = decodeList(responsibilities); err != nil {
		return nil, fmt.Errorf("corrupt responsibilities for listing %s: %w", l.ID, err)
	}
	return l, nil
}

func GetListing(ctx context.Context, id string) (*models.InternshipListing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id=?`
	l, err := scanListing(DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return l, err
}

// GetAllListings returns every listing, oldest first
func GetAllListings(ctx context.Context) ([]*models.InternshipListing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings ORDER BY created_at ASC, id ASC`
	rows, err := DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := []*models.InternshipListing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// DeleteListing removes a listing and, by cascade, its stored results.
// It reports whether a row was deleted.
func DeleteListing(ctx context.Context, id string) (bool, error) {
	result, err := DB.ExecContext(ctx, `DELETE FROM listings WHERE id=?`, id)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

// Verification operations

// UpsertVerification stores the latest result for a listing, replacing any previous one
func UpsertVerification(ctx context.Context, listingID string, r models.VerificationResult) error {
	signals, err := json.Marshal(r.Signals)
	if err != nil {
		return err
	}
	flags := r.RedFlags
	if flags == nil {
		flags = []models.RedFlag{}
	}
	redFlags, err := json.Marshal(flags)
	if err != nil {
		return err
	}

	query := `INSERT INTO verification_results (listing_id, status, trust_score, signals, red_flags, notes, verified_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)
			  ON CONFLICT(listing_id) DO UPDATE SET
				status=excluded.status,
				trust_score=excluded.trust_score,
				signals=excluded.signals,
				red_flags=excluded.red_flags,
				notes=excluded.notes,
				verified_at=excluded.verified_at`
	_, err = DB.ExecContext(ctx, query, listingID, string(r.Status), r.TrustScore,
		string(signals), string(redFlags), r.Notes, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save verification for %s: %w", listingID, err)
	}
	return nil
}

func GetVerification(ctx context.Context, listingID string) (*models.VerificationResult, error) {
	query := `SELECT status, trust_score, signals, red_flags, notes
			  FROM verification_results WHERE listing_id=?`
	r := &models.VerificationResult{}
	var status, signals, redFlags string
	var notes sql.NullString
	err := DB.QueryRowContext(ctx, query, listingID).Scan(&status, &r.TrustScore, &signals, &redFlags, &notes)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r.Status = models.VerificationStatus(status)
	r.Notes = notes.String
	if err := json.Unmarshal([]byte(signals), &r.Signals); err != nil {
		return nil, fmt.Errorf("corrupt signals for %s: %w", listingID, err)
	}
	if err := json.Unmarshal([]byte(redFlags), &r.RedFlags); err != nil {
		return nil, fmt.Errorf("corrupt red flags for %s: %w", listingID, err)
	}
	if r.RedFlags == nil {
		r.RedFlags = []models.RedFlag{}
	}
	return r, nil
}

// Skill match operations

// UpsertSkillMatch stores the latest match of a profile against a listing
func UpsertSkillMatch(ctx context.Context, profileID, listingID string, m models.SkillMatch) error {
	result, err := json.Marshal(m)
	if err != nil {
		return err
	}

	query := `INSERT INTO skill_matches (profile_id, listing_id, match_percentage, result, computed_at)
			  VALUES (?, ?, ?, ?, ?)
			  ON CONFLICT(profile_id, listing_id) DO UPDATE SET
				match_percentage=excluded.match_percentage,
				result=excluded.result,
				computed_at=excluded.computed_at`
	_, err = DB.ExecContext(ctx, query, profileID, listingID, m.MatchPercentage, string(result), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save skill match for %s/%s: %w", profileID, listingID, err)
	}
	return nil
}

func GetSkillMatch(ctx context.Context, profileID, listingID string) (*models.SkillMatch, error) {
	query := `SELECT result FROM skill_matches WHERE profile_id=? AND listing_id=?`
	var raw string
	err := DB.QueryRowContext(ctx, query, profileID, listingID).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	m := &models.SkillMatch{}
	if err := json.Unmarshal([]byte(raw), m); err != nil {
		return nil, fmt.Errorf("corrupt skill match for %s/%s: %w", profileID, listingID, err)
	}
	return m, nil
}

// CountByStatus counts listings per stored verification status. Listings
// never verified are counted under models.StatusPending.
func CountByStatus(ctx context.Context) (map[models.VerificationStatus]int, error) {
	query := `SELECT COALESCE(v.status, ?), COUNT(*)
			  FROM listings l LEFT JOIN verification_results v ON v.listing_id = l.id
			  GROUP BY 1`
	rows, err := DB.QueryContext(ctx, query, string(models.StatusPending))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.VerificationStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[models.VerificationStatus(status)] = n
	}
	return counts, rows.Err()
}
