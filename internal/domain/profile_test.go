package domain_test

import (
	"testing"
	"time"

	"profile-directory/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 30, 0, 0, time.UTC)
}

func TestAge(t *testing.T) {
	tests := []struct {
		dob   string
		today time.Time
		want  int
	}{
		{"2000-06-15", date(2024, time.June, 14), 23},
		{"2000-06-15", date(2024, time.June, 15), 24},
		{"2000-06-15", date(2024, time.June, 16), 24},
		{"2000-06-15", date(2024, time.May, 30), 23},
		{"2000-06-15", date(2024, time.July, 1), 24},
		{"2000-02-29", date(2023, time.February, 28), 22},
		{"2000-02-29", date(2023, time.March, 1), 23},
	}

	for _, tt := range tests {
		got, err := domain.Age(tt.dob, tt.today)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "age(%s, %s)", tt.dob, tt.today.Format(domain.DOBLayout))
	}

	t.Run("Should fail on malformed dates", func(t *testing.T) {
		_, err := domain.Age("15/06/2000", date(2024, time.June, 15))
		assert.Error(t, err)
	})
}

func TestSplitFullName(t *testing.T) {
	tests := []struct {
		input, first, last string
	}{
		{"Ada Lovelace", "Ada", "Lovelace"},
		{"Madonna", "", "Madonna"},
		{"Mary Jane Watson", "Mary Jane", "Watson"},
		{"", "", ""},
	}
	for _, tt := range tests {
		first, last := domain.SplitFullName(tt.input)
		assert.Equal(t, tt.first, first, tt.input)
		assert.Equal(t, tt.last, last, tt.input)
	}
}

func TestFilterProfiles(t *testing.T) {
	profiles := []domain.Profile{
		{ID: 1, First: "Ada", Last: "Lovelace"},
		{ID: 2, First: "Grace", Last: "Hopper"},
		{ID: 3, First: "Adam", Last: "Smith"},
	}
	original := append([]domain.Profile(nil), profiles...)

	t.Run("Should keep matching profiles in order", func(t *testing.T) {
		got := domain.FilterProfiles(profiles, "ADA")
		require.Len(t, got, 2)
		assert.Equal(t, 1, got[0].ID)
		assert.Equal(t, 3, got[1].ID)
	})

	t.Run("Should match the joined full name", func(t *testing.T) {
		got := domain.FilterProfiles(profiles, "e h")
		require.Len(t, got, 1)
		assert.Equal(t, 2, got[0].ID)
	})

	t.Run("Should return everything for an empty term", func(t *testing.T) {
		assert.Equal(t, profiles, domain.FilterProfiles(profiles, ""))
	})

	t.Run("Should return nothing when no name matches", func(t *testing.T) {
		assert.Empty(t, domain.FilterProfiles(profiles, "zzz"))
	})

	assert.Equal(t, original, profiles)
}

func TestDraftApply(t *testing.T) {
	p := domain.Profile{ID: 1, First: "Ada", Last: "Lovelace", DOB: "1815-12-10", Gender: "female", Country: "United Kingdom", Description: "Mathematician", Picture: "ada.jpg"}

	d := domain.SeedDraft(p)
	country := "Spain"
	d.Country = &country

	got := d.Apply(p)
	assert.Equal(t, "Spain", got.Country)
	assert.Equal(t, "Ada", got.First)
	assert.Equal(t, "ada.jpg", got.Picture)
	assert.Equal(t, "United Kingdom", p.Country)

	t.Run("Should not alias the source draft after Clone", func(t *testing.T) {
		c := d.Clone()
		*c.Country = "Portugal"
		assert.Equal(t, "Spain", *d.Country)
	})
}
