package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// DOBLayout is the calendar date format used by Profile.DOB
const DOBLayout = "2006-01-02"

// Gender values accepted by the directory
const (
	GenderMale         = "male"
	GenderFemale       = "female"
	GenderTransgender  = "transgender"
	GenderRatherNotSay = "rather not say"
	GenderOther        = "other"
)

// Genders lists the closed gender set in display order
var Genders = []string{GenderMale, GenderFemale, GenderTransgender, GenderRatherNotSay, GenderOther}

// IsValidGender reports whether g belongs to the closed gender set
func IsValidGender(g string) bool {
	for _, v := range Genders {
		if v == g {
			return true
		}
	}
	return false
}

// Profile is a committed directory record. It carries no view state.
type Profile struct {
	ID          int    `json:"id"`
	First       string `json:"first"`
	Last        string `json:"last"`
	DOB         string `json:"dob"`
	Gender      string `json:"gender"`
	Country     string `json:"country"`
	Description string `json:"description"`
	Picture     string `json:"picture"`
}

// FullName returns the "first last" display name used for searching
func (p Profile) FullName() string {
	return p.First + " " + p.Last
}

// Draft is a partial overlay of the editable Profile fields.
// A nil field means "not edited".
type Draft struct {
	First       *string `json:"first,omitempty"`
	Last        *string `json:"last,omitempty"`
	DOB         *string `json:"dob,omitempty"`
	Gender      *string `json:"gender,omitempty" validate:"omitempty,valid_gender"`
	Country     *string `json:"country,omitempty" validate:"required,not_blank,no_digits"`
	Description *string `json:"description,omitempty" validate:"required,not_blank"`
}

// SeedDraft copies the three protected fields of p into a new Draft
func SeedDraft(p Profile) Draft {
	gender, country, description := p.Gender, p.Country, p.Description
	return Draft{
		Gender:      &gender,
		Country:     &country,
		Description: &description,
	}
}

// Clone returns a deep copy so callers can't alias pointer fields
func (d Draft) Clone() Draft {
	return Draft{
		First:       clonePtr(d.First),
		Last:        clonePtr(d.Last),
		DOB:         clonePtr(d.DOB),
		Gender:      clonePtr(d.Gender),
		Country:     clonePtr(d.Country),
		Description: clonePtr(d.Description),
	}
}

// Apply merges the draft onto p: every set field wins, the rest is untouched
func (d Draft) Apply(p Profile) Profile {
	if d.First != nil {
		p.First = *d.First
	}
	if d.Last != nil {
		p.Last = *d.Last
	}
	if d.DOB != nil {
		p.DOB = *d.DOB
	}
	if d.Gender != nil {
		p.Gender = *d.Gender
	}
	if d.Country != nil {
		p.Country = *d.Country
	}
	if d.Description != nil {
		p.Description = *d.Description
	}
	return p
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// SplitFullName splits a combined name input. The final whitespace-delimited
// token is the last name; everything before it, joined by single spaces, is
// the first name.
func SplitFullName(input string) (first, last string) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return "", ""
	}
	return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
}

// AgeOn returns the age in whole years of someone born on birth, as of today
func AgeOn(birth, today time.Time) int {
	age := today.Year() - birth.Year()
	monthDiff := int(today.Month()) - int(birth.Month())
	if monthDiff < 0 || (monthDiff == 0 && today.Day() < birth.Day()) {
		age--
	}
	return age
}

// Age parses dob and returns AgeOn against today
func Age(dob string, today time.Time) (int, error) {
	birth, err := time.Parse(DOBLayout, strings.TrimSpace(dob))
	if err != nil {
		return 0, err
	}
	return AgeOn(birth, today), nil
}

// FilterProfiles returns, in source order, the profiles whose full name
// contains term case-insensitively. The input slice is never modified.
func FilterProfiles(profiles []Profile, term string) []Profile {
	needle := strings.ToLower(term)
	out := make([]Profile, 0, len(profiles))
	for _, p := range profiles {
		if strings.Contains(strings.ToLower(p.FullName()), needle) {
			out = append(out, p)
		}
	}
	return out
}

// ProfileRepository defines storage operations for the profile collection
type ProfileRepository interface {
	List(ctx context.Context) ([]Profile, error)
	GetByID(ctx context.Context, id int) (*Profile, error)
	Update(ctx context.Context, profile *Profile) error
	Delete(ctx context.Context, id int) (bool, error)
	// Version increments on every mutation of the collection
	Version() uint64
}
