package domain

import (
	"context"
	"errors"
)

// Directory state errors. The usecase maps each to an AppError.
var (
	ErrNotExpanded    = errors.New("profile must be expanded before editing")
	ErrAlreadyEditing = errors.New("another edit is already in progress")
	ErrNotEditing     = errors.New("profile is not being edited")
	ErrNothingToSave  = errors.New("nothing to save")
	ErrUnknownField   = errors.New("unknown field")
)

// Editable field names accepted by ChangeField
const (
	FieldName        = "name"
	FieldDOB         = "dob"
	FieldGender      = "gender"
	FieldCountry     = "country"
	FieldDescription = "description"
)

// EditableFields lists ChangeField names in form order
var EditableFields = []string{FieldName, FieldDOB, FieldGender, FieldCountry, FieldDescription}

// ProfileView is a Profile as rendered, with the draft overlay applied when
// it is the profile being edited.
type ProfileView struct {
	Profile
	Age       *int `json:"age"`
	IsOpen    bool `json:"is_open"`
	IsEditing bool `json:"is_editing"`
}

// DirectoryView is the read-only projection of the directory state
type DirectoryView struct {
	Search    string        `json:"search"`
	Profiles  []ProfileView `json:"profiles"`
	Total     int           `json:"total"` // collection size before filtering
	OpenID    *int          `json:"open_id"`
	EditingID *int          `json:"editing_id"`
	Draft     *Draft        `json:"draft,omitempty"`
	CanSave   bool          `json:"can_save"`
}

// DirectoryUsecase defines the directory state transitions
type DirectoryUsecase interface {
	View(ctx context.Context) (*DirectoryView, error)
	Preview(ctx context.Context, term string) (*DirectoryView, error)
	SetSearch(ctx context.Context, term string) (*DirectoryView, error)
	Toggle(ctx context.Context, id int) (*DirectoryView, error)
	BeginEdit(ctx context.Context, id int) (*DirectoryView, error)
	ChangeField(ctx context.Context, name, value string) (*DirectoryView, error)
	CancelEdit(ctx context.Context) (*DirectoryView, error)
	SaveEdit(ctx context.Context, id int) (*DirectoryView, error)
	Delete(ctx context.Context, id int) (*DirectoryView, error)
}
