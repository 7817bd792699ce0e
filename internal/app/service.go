package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/khrees2412/internly/internal/cache"
	"github.com/khrees2412/internly/internal/calendar"
	"github.com/khrees2412/internly/internal/database"
	"github.com/khrees2412/internly/internal/importer"
	"github.com/khrees2412/internly/internal/logger"
	"github.com/khrees2412/internly/internal/matcher"
	"github.com/khrees2412/internly/internal/scraper"
	"github.com/khrees2412/internly/internal/verifier"
	"github.com/khrees2412/internly/pkg/models"
)

// VerifiedListing pairs a listing with its verification result
type VerifiedListing struct {
	Listing *models.InternshipListing `json:"internship"`
	Result  models.VerificationResult `json:"verification"`
}

// Profile operations

// SaveProfile stores the profile and drops cached matches computed from
// its previous skills.
func (a *App) SaveProfile(ctx context.Context, p *models.StudentProfile) error {
	if err := database.SaveProfile(ctx, p); err != nil {
		return err
	}

	listings, err := database.GetAllListings(ctx)
	if err != nil {
		return err
	}
	for _, l := range listings {
		if err := a.Cache.Delete(ctx, cache.MatchKey(p.ID, l.ID)); err != nil {
			logger.Warn().Err(err).Str("listing", l.ID).Msg("failed to invalidate cached match")
		}
	}

	logger.Info().Str("profile", p.ID).Int("semester", p.Semester).Int("skills", len(p.Skills)).Msg("profile saved")
	return nil
}

// Profile returns the stored profile or ErrNoProfile
func (a *App) Profile(ctx context.Context) (*models.StudentProfile, error) {
	p, err := database.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNoProfile
	}
	return p, nil
}

// Listing operations

func (a *App) AddListing(ctx context.Context, l *models.InternshipListing) error {
	err := database.CreateListing(ctx, l)
	if errors.Is(err, database.ErrDuplicateURL) {
		return fmt.Errorf("%w: %s", ErrListingExists, l.SourceURL)
	}
	if err != nil {
		return err
	}
	logger.Info().Str("id", l.ID).Str("company", l.Company).Msg("listing added")
	return nil
}

// ImportListings stores every valid listing in r. Documents rejected by
// validation or already stored are returned as rejections.
func (a *App) ImportListings(ctx context.Context, r io.Reader) ([]*models.InternshipListing, []importer.Rejection, error) {
	listings, rejected, err := importer.Read(r)
	if err != nil {
		return nil, nil, err
	}

	docIndex := acceptedIndexes(len(listings)+len(rejected), rejected)
	added := make([]*models.InternshipListing, 0, len(listings))
	for i, l := range listings {
		if err := a.AddListing(ctx, l); err != nil {
			if errors.Is(err, ErrListingExists) || errors.Is(err, models.ErrValidation) {
				rejected = append(rejected, importer.Rejection{Index: docIndex[i], Err: err})
				continue
			}
			return added, rejected, err
		}
		added = append(added, l)
	}
	slices.SortFunc(rejected, func(x, y importer.Rejection) int { return x.Index - y.Index })
	return added, rejected, nil
}

// acceptedIndexes maps the position of each parsed listing back to its
// document index in the input.
func acceptedIndexes(total int, rejected []importer.Rejection) []int {
	skip := make(map[int]bool, len(rejected))
	for _, r := range rejected {
		skip[r.Index] = true
	}
	out := make([]int, 0, total-len(rejected))
	for i := 0; i < total; i++ {
		if !skip[i] {
			out = append(out, i)
		}
	}
	return out
}

// FetchListing renders url, parses it into a listing and stores it. A
// non-empty platform records where the student found the listing and
// overrides the one derived from the host.
func (a *App) FetchListing(ctx context.Context, url, platform string) (*models.InternshipListing, error) {
	if a.Fetcher == nil {
		return nil, fmt.Errorf("%w: no fetcher configured", ErrInvalidArgument)
	}
	html, err := a.Fetcher.FetchHTML(ctx, url)
	if err != nil {
		return nil, err
	}
	l, err := scraper.ParseListingHTML(url, html)
	if err != nil {
		return nil, fmt.Errorf("failed to extract listing from %s: %w", url, err)
	}
	if platform != "" {
		l.Platform = platform
	}
	if err := a.AddListing(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Listing returns a stored listing or ErrNotFound
func (a *App) Listing(ctx context.Context, id string) (*models.InternshipListing, error) {
	l, err := database.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, fmt.Errorf("listing %s: %w", id, ErrNotFound)
	}
	return l, nil
}

func (a *App) Listings(ctx context.Context) ([]*models.InternshipListing, error) {
	return database.GetAllListings(ctx)
}

// RemoveListing deletes a listing with its stored and cached results
func (a *App) RemoveListing(ctx context.Context, id string) error {
	deleted, err := database.DeleteListing(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("listing %s: %w", id, ErrNotFound)
	}

	keys := []string{cache.VerifyKey(id)}
	if p, err := database.GetProfile(ctx); err == nil && p != nil {
		keys = append(keys, cache.MatchKey(p.ID, id))
	}
	for _, k := range keys {
		if err := a.Cache.Delete(ctx, k); err != nil {
			logger.Warn().Err(err).Str("key", k).Msg("failed to invalidate cache")
		}
	}
	return nil
}

// Verification

// VerifyListing returns the verification result for a stored listing,
// computing and persisting it on a cache miss.
func (a *App) VerifyListing(ctx context.Context, id string) (models.VerificationResult, error) {
	key := cache.VerifyKey(id)
	var result models.VerificationResult
	if a.cachedJSON(ctx, key, &result) {
		return result, nil
	}

	l, err := a.Listing(ctx, id)
	if err != nil {
		return models.VerificationResult{}, err
	}
	result = verifier.Verify(l)
	if err := a.storeVerification(ctx, l.ID, result); err != nil {
		return models.VerificationResult{}, err
	}
	return result, nil
}

// VerifyAll re-verifies every stored listing in parallel and overwrites
// the stored results.
func (a *App) VerifyAll(ctx context.Context) ([]VerifiedListing, error) {
	listings, err := database.GetAllListings(ctx)
	if err != nil {
		return nil, err
	}

	results, err := verifier.VerifyAll(ctx, listings, a.workers())
	if err != nil {
		return nil, err
	}

	out := make([]VerifiedListing, len(listings))
	for i, l := range listings {
		if err := a.storeVerification(ctx, l.ID, results[i]); err != nil {
			return nil, err
		}
		out[i] = VerifiedListing{Listing: l, Result: results[i]}
	}
	logger.Info().Int("listings", len(out)).Msg("verification complete")
	return out, nil
}

func (a *App) storeVerification(ctx context.Context, listingID string, result models.VerificationResult) error {
	if err := database.UpsertVerification(ctx, listingID, result); err != nil {
		return err
	}
	if err := cache.SetJSON(ctx, a.Cache, cache.VerifyKey(listingID), result, a.cacheTTL()); err != nil {
		logger.Warn().Err(err).Str("listing", listingID).Msg("failed to cache verification")
	}
	return nil
}

// Summary is a count of stored listings by verification status
type Summary struct {
	Total    int                               `json:"total"`
	ByStatus map[models.VerificationStatus]int `json:"by_status"`
}

// Summarize counts stored listings by their last stored verification status
func (a *App) Summarize(ctx context.Context) (Summary, error) {
	counts, err := database.CountByStatus(ctx)
	if err != nil {
		return Summary{}, err
	}
	s := Summary{ByStatus: counts}
	for _, n := range counts {
		s.Total += n
	}
	return s, nil
}

// Matching

// MatchListing compares the stored profile with a listing and returns the
// match with its learning path.
func (a *App) MatchListing(ctx context.Context, id string) (models.SkillMatch, error) {
	p, err := a.Profile(ctx)
	if err != nil {
		return models.SkillMatch{}, err
	}

	key := cache.MatchKey(p.ID, id)
	var match models.SkillMatch
	if a.cachedJSON(ctx, key, &match) {
		return match, nil
	}

	l, err := a.Listing(ctx, id)
	if err != nil {
		return models.SkillMatch{}, err
	}
	match = matcher.CreateSkillMatch(p.Skills, l)

	if err := database.UpsertSkillMatch(ctx, p.ID, l.ID, match); err != nil {
		return models.SkillMatch{}, err
	}
	if err := cache.SetJSON(ctx, a.Cache, key, match, a.cacheTTL()); err != nil {
		logger.Warn().Err(err).Str("listing", id).Msg("failed to cache match")
	}
	return match, nil
}

// RankForProfile ranks every stored listing against the stored profile
func (a *App) RankForProfile(ctx context.Context) ([]models.RankedInternship, error) {
	p, err := a.Profile(ctx)
	if err != nil {
		return nil, err
	}
	listings, err := database.GetAllListings(ctx)
	if err != nil {
		return nil, err
	}
	return matcher.RankInternshipsConcurrent(ctx, p, listings, a.workers())
}

// Calendar

// CurrentMonth is the month of the App's clock
func (a *App) CurrentMonth() int {
	return calendar.CurrentMonth(a.now())
}

// Calendar returns the calendar for the profile's semester seen from month
func (a *App) Calendar(ctx context.Context, month int) (models.CalendarWindow, error) {
	p, err := a.Profile(ctx)
	if err != nil {
		return models.CalendarWindow{}, err
	}
	return calendar.GetCalendarForSemester(p.Semester, month)
}

// Preparation returns the preparation window for the profile's semester.
// A zero now means the current time; a zero target means the first apply month.
func (a *App) Preparation(ctx context.Context, now time.Time, targetMonth int) (models.PreparationWindow, error) {
	p, err := a.Profile(ctx)
	if err != nil {
		return models.PreparationWindow{}, err
	}
	if now.IsZero() {
		now = a.now()
	}
	return calendar.CalculatePreparationWindow(p.Semester, now, targetMonth)
}

func (a *App) cachedJSON(ctx context.Context, key string, v any) bool {
	err := cache.GetJSON(ctx, a.Cache, key, v)
	if err == nil {
		logger.Debug().Str("key", key).Msg("cache hit")
		return true
	}
	if !errors.Is(err, cache.ErrMiss) {
		logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}
	return false
}
