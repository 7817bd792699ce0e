package app

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/khrees2412/internly/internal/cache"
	"github.com/khrees2412/internly/internal/config"
	"github.com/khrees2412/internly/internal/database"
	"github.com/khrees2412/internly/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	html string
	err  error
	urls []string
}

func (f *fakeFetcher) FetchHTML(_ context.Context, url string) (string, error) {
	f.urls = append(f.urls, url)
	return f.html, f.err
}

var fixedNow = time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) (*App, *cache.MemoryStore, *fakeFetcher) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "internly.db"))
	require.NoError(t, err)

	oldDB := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = oldDB
		db.Close()
	})

	store := cache.NewMemoryStore()
	fetcher := &fakeFetcher{}
	a := New(&config.Config{Workers: 3, CacheTTL: time.Hour}, db, store, fetcher)
	a.now = func() time.Time { return fixedNow }
	return a, store, fetcher
}

func saveProfile(t *testing.T, a *App, semester int, skills ...string) *models.StudentProfile {
	t.Helper()
	p, err := models.NewStudentProfile("student", semester, skills, nil, nil)
	require.NoError(t, err)
	require.NoError(t, a.SaveProfile(context.Background(), p))
	return p
}

func addListing(t *testing.T, a *App, l *models.InternshipListing) *models.InternshipListing {
	t.Helper()
	require.NoError(t, a.AddListing(context.Background(), l))
	return l
}

func cleanListing() *models.InternshipListing {
	return &models.InternshipListing{
		Title:          "Platform Intern",
		Company:        "TechCorp Pvt Ltd",
		CompanyDomain:  "techcorp.com",
		Platform:       "LinkedIn",
		Stipend:        "₹15000/month",
		RequiredSkills: []string{"Go", "SQL", "Docker"},
		Responsibilities: []string{
			"Design and implement REST endpoints for the billing service",
		},
	}
}

func TestVerifyListing_PersistsAndCaches(t *testing.T) {
	a, store, _ := newTestApp(t)
	ctx := context.Background()
	l := addListing(t, a, cleanListing())

	result, err := a.VerifyListing(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusVerified, result.Status)
	assert.Equal(t, 90, result.TrustScore)

	stored, err := database.GetVerification(ctx, l.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, result.TrustScore, stored.TrustScore)

	_, err = store.Get(ctx, cache.VerifyKey(l.ID))
	require.NoError(t, err)

	// a cached result is served without touching the listing
	require.NoError(t, cache.SetJSON(ctx, store, cache.VerifyKey(l.ID), models.VerificationResult{TrustScore: 1}, 0))
	again, err := a.VerifyListing(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, again.TrustScore)
}

func TestVerifyListing_NotFound(t *testing.T) {
	a, _, _ := newTestApp(t)

	_, err := a.VerifyListing(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVerifyAll(t *testing.T) {
	a, _, _ := newTestApp(t)
	ctx := context.Background()

	addListing(t, a, cleanListing())
	addListing(t, a, &models.InternshipListing{
		Title:         "Earn from home, pay registration fee",
		Company:       "Quick Cash",
		CompanyDomain: "gmail.com",
	})

	all, err := a.VerifyAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, models.StatusVerified, all[0].Result.Status)
	assert.Equal(t, models.StatusPotentialScam, all[1].Result.Status)

	for _, v := range all {
		stored, err := database.GetVerification(ctx, v.Listing.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, v.Result.Status, stored.Status)
	}
}

func TestMatchListing_NeedsProfile(t *testing.T) {
	a, _, _ := newTestApp(t)
	l := addListing(t, a, cleanListing())

	_, err := a.MatchListing(context.Background(), l.ID)
	assert.ErrorIs(t, err, ErrNoProfile)
}

func TestMatchListing_InvalidatedByProfileChange(t *testing.T) {
	a, _, _ := newTestApp(t)
	ctx := context.Background()
	l := addListing(t, a, cleanListing())
	saveProfile(t, a, 5, "Go", "SQL")

	m, err := a.MatchListing(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, 66, m.MatchPercentage)
	assert.Equal(t, []string{"Docker"}, m.MissingSkills)
	require.Len(t, m.LearningPath, 1)
	assert.Equal(t, models.PriorityHigh, m.LearningPath[0].Priority)

	stored, err := database.GetSkillMatch(ctx, "student", l.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 66, stored.MatchPercentage)

	saveProfile(t, a, 5, "Go", "SQL", "Docker")
	m, err = a.MatchListing(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, m.MatchPercentage)
	assert.Empty(t, m.LearningPath)
}

func TestMatchListing_NotFound(t *testing.T) {
	a, _, _ := newTestApp(t)
	saveProfile(t, a, 4, "Go")

	_, err := a.MatchListing(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRankForProfile(t *testing.T) {
	a, _, _ := newTestApp(t)
	ctx := context.Background()

	web := addListing(t, a, &models.InternshipListing{Title: "Web", Company: "A", RequiredSkills: []string{"React"}})
	platform := addListing(t, a, cleanListing())
	open := addListing(t, a, &models.InternshipListing{Title: "Open", Company: "B"})

	_, err := a.RankForProfile(ctx)
	assert.ErrorIs(t, err, ErrNoProfile)

	saveProfile(t, a, 6, "go", "sql")
	ranked, err := a.RankForProfile(ctx)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, open.ID, ranked[0].Listing.ID)
	assert.Equal(t, platform.ID, ranked[1].Listing.ID)
	assert.Equal(t, web.ID, ranked[2].Listing.ID)
	assert.Equal(t, []int{100, 66, 0}, []int{ranked[0].MatchPercentage, ranked[1].MatchPercentage, ranked[2].MatchPercentage})
}

func TestAddListing_Duplicate(t *testing.T) {
	a, _, _ := newTestApp(t)

	first := cleanListing()
	first.SourceURL = "https://techcorp.com/jobs/1"
	addListing(t, a, first)

	second := cleanListing()
	second.SourceURL = "https://techcorp.com/jobs/1"
	err := a.AddListing(context.Background(), second)
	assert.ErrorIs(t, err, ErrListingExists)
}

func TestImportListings(t *testing.T) {
	a, _, _ := newTestApp(t)
	ctx := context.Background()
	existing := cleanListing()
	existing.SourceURL = "https://techcorp.com/jobs/1"
	addListing(t, a, existing)

	input := `[
  {"title": "Missing company"},
  {"title": "Fresh", "company": "Acme", "source_url": "https://acme.io/jobs/2"},
  {"title": "Dup", "company": "TechCorp", "source_url": "https://techcorp.com/jobs/1"}
]`
	added, rejected, err := a.ImportListings(ctx, strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, "Fresh", added[0].Title)

	require.Len(t, rejected, 2)
	assert.Equal(t, 0, rejected[0].Index)
	assert.Equal(t, 2, rejected[1].Index)
	assert.ErrorIs(t, rejected[1].Err, ErrListingExists)

	all, err := a.Listings(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestFetchListing(t *testing.T) {
	a, _, fetcher := newTestApp(t)
	ctx := context.Background()

	fetcher.html = `<html><body><h1>SRE Intern</h1><div class="company">TechCorp</div>
<main><ul><li>Keep the lights on</li></ul></main></body></html>`

	l, err := a.FetchListing(ctx, "https://techcorp.com/careers/sre", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://techcorp.com/careers/sre"}, fetcher.urls)
	assert.Equal(t, "SRE Intern", l.Title)
	assert.Equal(t, "techcorp.com", l.CompanyDomain)
	assert.Empty(t, l.Platform)

	result, err := a.VerifyListing(ctx, l.ID)
	require.NoError(t, err)
	assert.False(t, result.Signals.KnownPlatform)
	assert.NotEqual(t, models.StatusVerified, result.Status)

	withPlatform, err := a.FetchListing(ctx, "https://techcorp.com/careers/sre-2", "LinkedIn")
	require.NoError(t, err)
	assert.Equal(t, "LinkedIn", withPlatform.Platform)

	stored, err := a.Listing(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, l.Title, stored.Title)

	fetcher.err = errors.New("browser crashed")
	_, err = a.FetchListing(ctx, "https://techcorp.com/careers/other", "")
	assert.ErrorContains(t, err, "browser crashed")
}

func TestRemoveListing(t *testing.T) {
	a, store, _ := newTestApp(t)
	ctx := context.Background()
	saveProfile(t, a, 5, "Go")
	l := addListing(t, a, cleanListing())

	_, err := a.VerifyListing(ctx, l.ID)
	require.NoError(t, err)
	_, err = a.MatchListing(ctx, l.ID)
	require.NoError(t, err)

	require.NoError(t, a.RemoveListing(ctx, l.ID))

	_, err = store.Get(ctx, cache.VerifyKey(l.ID))
	assert.ErrorIs(t, err, cache.ErrMiss)
	_, err = store.Get(ctx, cache.MatchKey("student", l.ID))
	assert.ErrorIs(t, err, cache.ErrMiss)

	_, err = a.Listing(ctx, l.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, a.RemoveListing(ctx, l.ID), ErrNotFound)
}

func TestCalendar(t *testing.T) {
	a, _, _ := newTestApp(t)
	ctx := context.Background()

	_, err := a.Calendar(ctx, 10)
	assert.ErrorIs(t, err, ErrNoProfile)

	saveProfile(t, a, 5)
	assert.Equal(t, 10, a.CurrentMonth())

	// October falls inside the Aug-Oct window
	cal, err := a.Calendar(ctx, a.CurrentMonth())
	require.NoError(t, err)
	assert.Equal(t, "Application window is OPEN - Apply now!", cal.CurrentStatus)

	cal, err = a.Calendar(ctx, 12)
	require.NoError(t, err)
	assert.Contains(t, cal.CurrentStatus, "Internship period")

	_, err = a.Calendar(ctx, 13)
	assert.ErrorIs(t, err, models.ErrValidation)
	_, err = a.Calendar(ctx, 0)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestPreparation(t *testing.T) {
	a, _, _ := newTestApp(t)
	ctx := context.Background()
	saveProfile(t, a, 3)

	w, err := a.Preparation(ctx, time.Time{}, 0)
	require.NoError(t, err)
	require.NotNil(t, w.MonthsToPrepare)
	assert.Equal(t, 10, w.CurrentMonth)
	assert.Equal(t, 3, *w.MonthsToPrepare)

	w, err = a.Preparation(ctx, time.Date(2026, time.December, 5, 0, 0, 0, 0, time.UTC), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, *w.MonthsToPrepare)
}

func TestContext(t *testing.T) {
	a, _, _ := newTestApp(t)

	assert.Nil(t, FromContext(context.Background()))
	ctx := WithApp(context.Background(), a)
	assert.Same(t, a, FromContext(ctx))
}

func TestSummarize(t *testing.T) {
	a, _, _ := newTestApp(t)
	ctx := context.Background()

	l := addListing(t, a, cleanListing())
	addListing(t, a, &models.InternshipListing{Title: "Unverified", Company: "Acme Labs"})
	_, err := a.VerifyListing(ctx, l.ID)
	require.NoError(t, err)

	s, err := a.Summarize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 1, s.ByStatus[models.StatusVerified])
	assert.Equal(t, 1, s.ByStatus[models.StatusPending])
}
