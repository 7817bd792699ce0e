package matcher

import (
	"context"
	"sort"

	"github.com/khrees2412/internly/internal/logger"
	"github.com/khrees2412/internly/pkg/models"
	"golang.org/x/sync/errgroup"
)

// RankInternships scores every listing against the profile's skills and
// orders them by match percentage, highest first. Ties keep input order,
// so the ranking is reproducible for identical inputs.
func RankInternships(profile *models.StudentProfile, listings []*models.InternshipListing) []models.RankedInternship {
	ranked := make([]models.RankedInternship, len(listings))
	for i, l := range listings {
		ranked[i] = rankOne(profile, l)
	}
	sortRanked(ranked)
	return ranked
}

// RankInternshipsConcurrent is RankInternships with the per-listing work
// fanned out over at most workers goroutines (unbounded when workers <= 0).
// Only the final sort is sequential.
func RankInternshipsConcurrent(ctx context.Context, profile *models.StudentProfile, listings []*models.InternshipListing, workers int) ([]models.RankedInternship, error) {
	ranked := make([]models.RankedInternship, len(listings))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, l := range listings {
		i, l := i, l
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ranked[i] = rankOne(profile, l)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sortRanked(ranked)
	return ranked, nil
}

func rankOne(profile *models.StudentProfile, l *models.InternshipListing) models.RankedInternship {
	m := CalculateSkillMatch(profile.Skills, l.RequiredSkills, l.PreferredSkills)
	return models.RankedInternship{
		Listing:         l,
		MatchPercentage: m.MatchPercentage,
		MatchingSkills:  m.MatchingSkills,
		MissingSkills:   m.MissingSkills,
	}
}

func sortRanked(ranked []models.RankedInternship) {
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchPercentage > ranked[j].MatchPercentage
	})
	if len(ranked) > 0 {
		logger.Debug().
			Int("listings", len(ranked)).
			Int("top_match", ranked[0].MatchPercentage).
			Msg("internships ranked")
	}
}
