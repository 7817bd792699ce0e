package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSemester(t *testing.T) {
	for s := MinSemester; s <= MaxSemester; s++ {
		assert.NoError(t, ValidateSemester(s), "semester %d", s)
	}
	for _, s := range []int{-1, 0, 9, 100} {
		err := ValidateSemester(s)
		require.Error(t, err, "semester %d", s)
		assert.True(t, errors.Is(err, ErrValidation))

		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "semester", vErr.Field)
	}
}

func TestValidateMonth(t *testing.T) {
	for m := 1; m <= 12; m++ {
		assert.NoError(t, ValidateMonth(m))
	}
	assert.ErrorIs(t, ValidateMonth(0), ErrValidation)
	assert.ErrorIs(t, ValidateMonth(13), ErrValidation)
	assert.Contains(t, ValidateMonth(13).Error(), "between 1 and 12, got 13")
}

func TestNewStudentProfile(t *testing.T) {
	p, err := NewStudentProfile("u1", 4, []string{"Python", " python ", "", "React"}, nil, []string{"Acme"})
	require.NoError(t, err)
	assert.Equal(t, 4, p.Semester)
	assert.Equal(t, []string{"Python", "React"}, p.Skills)
	assert.Empty(t, p.PreferredRoles)
	assert.Equal(t, []string{"Acme"}, p.TargetCompanies)

	_, err = NewStudentProfile("u1", 9, nil, nil, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestInternshipListing_Validate(t *testing.T) {
	l := &InternshipListing{Title: "  Backend Intern ", Company: "TechCorp"}
	require.NoError(t, l.Validate())
	assert.Equal(t, "Backend Intern", l.Title)

	missing := &InternshipListing{Title: "Intern"}
	err := missing.Validate()
	require.Error(t, err)
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "Company", vErr.Field)
	assert.Equal(t, "is required", vErr.Reason)

	long := &InternshipListing{Title: strings.Repeat("x", 201), Company: "TechCorp"}
	err = long.Validate()
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "at most 200")
}

func TestPriorityRank(t *testing.T) {
	assert.Less(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Less(t, PriorityLow.Rank(), Priority("Unknown").Rank())
}
