package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"profile-directory/internal/domain"
	"profile-directory/pkg/apperror"
	"profile-directory/pkg/logger"
	"profile-directory/pkg/metrics"
	"profile-directory/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/go-cmp/cmp"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultAdultAge is the minimum age at which a profile may be edited
const DefaultAdultAge = 18

// DirectoryOptions tunes the directory usecase. Zero values pick defaults.
type DirectoryOptions struct {
	AdultAge        int
	FilterCacheSize int
	Clock           func() time.Time
}

type filterKey struct {
	version uint64
	term    string
}

type filterResult struct {
	matches []domain.Profile
	total   int
}

// directoryUsecase owns the view state of a single directory session.
// Every operation holds mu for its whole duration, so transitions apply
// one at a time and validation always completes before any mutation.
type directoryUsecase struct {
	mu       sync.Mutex
	repo     domain.ProfileRepository
	validate *validator.Validate
	clock    func() time.Time
	adultAge int
	filters  *lru.Cache[filterKey, filterResult]

	search    string
	openID    *int
	editingID *int
	draft     *domain.Draft
	baseline  domain.Draft
}

// NewDirectoryUsecase creates the directory state store over repo
func NewDirectoryUsecase(repo domain.ProfileRepository, validate *validator.Validate, opts DirectoryOptions) (domain.DirectoryUsecase, error) {
	if opts.AdultAge <= 0 {
		opts.AdultAge = DefaultAdultAge
	}
	if opts.FilterCacheSize <= 0 {
		opts.FilterCacheSize = 128
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if validate == nil {
		validate = validation.New()
	}

	cache, err := lru.New[filterKey, filterResult](opts.FilterCacheSize)
	if err != nil {
		return nil, fmt.Errorf("filter cache: %w", err)
	}

	return &directoryUsecase{
		repo:     repo,
		validate: validate,
		clock:    opts.Clock,
		adultAge: opts.AdultAge,
		filters:  cache,
	}, nil
}

func (u *directoryUsecase) View(ctx context.Context) (*domain.DirectoryView, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.view(ctx)
}

// Preview projects the directory filtered by term without storing it as
// the search term.
func (u *directoryUsecase) Preview(ctx context.Context, term string) (*domain.DirectoryView, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.project(ctx, term)
}

func (u *directoryUsecase) SetSearch(ctx context.Context, term string) (*domain.DirectoryView, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.search = term
	metrics.Observe("search", metrics.OutcomeOK)
	return u.view(ctx)
}

// Toggle flips the open state of id and closes every other profile.
// While an edit is active the accordion is locked and Toggle does nothing.
func (u *directoryUsecase) Toggle(ctx context.Context, id int) (*domain.DirectoryView, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.editingID != nil {
		metrics.Observe("toggle", metrics.OutcomeNoop)
		return u.view(ctx)
	}

	switch _, err := u.repo.GetByID(ctx, id); {
	case errors.Is(err, domain.ErrNotFound):
		u.openID = nil
	case err != nil:
		metrics.Observe("toggle", metrics.OutcomeError)
		return nil, apperror.Internal(err)
	case u.openID != nil && *u.openID == id:
		u.openID = nil
	default:
		u.openID = &id
	}

	metrics.Observe("toggle", metrics.OutcomeOK)
	return u.view(ctx)
}

// BeginEdit enters edit mode for the open profile id, subject to the age gate
func (u *directoryUsecase) BeginEdit(ctx context.Context, id int) (*domain.DirectoryView, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	profile, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, u.reject("begin_edit", apperror.NotFound("Profile not found"))
		}
		metrics.Observe("begin_edit", metrics.OutcomeError)
		return nil, apperror.Internal(err)
	}

	if u.editingID != nil {
		return nil, u.reject("begin_edit", apperror.Conflict("Another profile is already being edited", domain.ErrAlreadyEditing))
	}
	if u.openID == nil || *u.openID != id {
		return nil, u.reject("begin_edit", apperror.Conflict("Expand the profile before editing it", domain.ErrNotExpanded))
	}

	// An unparseable date of birth cannot prove adulthood.
	age, err := domain.Age(profile.DOB, u.clock())
	if err != nil || age < u.adultAge {
		logger.Log.Info("Edit rejected by age gate", "profile_id", id)
		return nil, u.reject("begin_edit", apperror.Forbidden(fmt.Sprintf("Cannot edit details of users under %d years old.", u.adultAge)))
	}

	seed := domain.SeedDraft(*profile)
	draft := seed.Clone()
	u.editingID = &id
	u.draft = &draft
	u.baseline = seed

	logger.Log.Debug("Edit started", "profile_id", id)
	metrics.Observe("begin_edit", metrics.OutcomeOK)
	return u.view(ctx)
}

// ChangeField records one form input into the draft
func (u *directoryUsecase) ChangeField(ctx context.Context, name, value string) (*domain.DirectoryView, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.editingID == nil {
		return nil, u.reject("change_field", apperror.Conflict("No profile is being edited", domain.ErrNotEditing))
	}

	next := u.draft.Clone()
	switch name {
	case domain.FieldDOB:
		next.DOB = &value
	case domain.FieldName:
		first, last := domain.SplitFullName(value)
		next.First, next.Last = &first, &last
	case domain.FieldGender:
		if err := u.validate.Var(value, "valid_gender"); err != nil {
			return nil, u.reject("change_field", apperror.New(http.StatusBadRequest, validation.MsgInvalidGender, err))
		}
		next.Gender = &value
	case domain.FieldCountry:
		next.Country = &value
	case domain.FieldDescription:
		next.Description = &value
	default:
		return nil, u.reject("change_field", apperror.New(http.StatusBadRequest, fmt.Sprintf("Unknown field %q", name), domain.ErrUnknownField))
	}

	u.draft = &next
	metrics.Observe("change_field", metrics.OutcomeOK)
	return u.view(ctx)
}

// CancelEdit discards the draft without validation
func (u *directoryUsecase) CancelEdit(ctx context.Context) (*domain.DirectoryView, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.editingID != nil {
		logger.Log.Debug("Edit cancelled", "profile_id", *u.editingID)
	}
	u.clearEdit()
	metrics.Observe("cancel_edit", metrics.OutcomeOK)
	return u.view(ctx)
}

// SaveEdit validates the draft and merges it onto the committed profile
func (u *directoryUsecase) SaveEdit(ctx context.Context, id int) (*domain.DirectoryView, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.editingID == nil || *u.editingID != id {
		return nil, u.reject("save_edit", apperror.Conflict("Profile is not being edited", domain.ErrNotEditing))
	}
	if !u.canSave() {
		return nil, u.reject("save_edit", apperror.Conflict("Nothing to save", domain.ErrNothingToSave))
	}
	if err := u.validate.Struct(u.draft); err != nil {
		return nil, u.reject("save_edit", apperror.Unprocessable(validation.DraftRejection(err), err))
	}

	profile, err := u.repo.GetByID(ctx, id)
	if err != nil {
		metrics.Observe("save_edit", metrics.OutcomeError)
		return nil, apperror.Internal(err)
	}
	merged := u.draft.Apply(*profile)
	if err := u.repo.Update(ctx, &merged); err != nil {
		metrics.Observe("save_edit", metrics.OutcomeError)
		return nil, apperror.Internal(err)
	}

	u.clearEdit()
	logger.Log.Info("Profile saved", "profile_id", id)
	metrics.Observe("save_edit", metrics.OutcomeOK)
	return u.view(ctx)
}

// Delete removes a profile. Deleting the profile under edit ends the edit
// session so the draft never outlives its record.
func (u *directoryUsecase) Delete(ctx context.Context, id int) (*domain.DirectoryView, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	removed, err := u.repo.Delete(ctx, id)
	if err != nil {
		metrics.Observe("delete", metrics.OutcomeError)
		return nil, apperror.Internal(err)
	}
	if !removed {
		metrics.Observe("delete", metrics.OutcomeNoop)
		return u.view(ctx)
	}

	if u.editingID != nil && *u.editingID == id {
		u.clearEdit()
	}
	if u.openID != nil && *u.openID == id {
		u.openID = nil
	}

	logger.Log.Info("Profile deleted", "profile_id", id)
	metrics.Observe("delete", metrics.OutcomeOK)
	return u.view(ctx)
}

func (u *directoryUsecase) clearEdit() {
	u.editingID = nil
	u.draft = nil
	u.baseline = domain.Draft{}
}

// canSave is false when the draft still equals the fields seeded at entry
func (u *directoryUsecase) canSave() bool {
	return u.draft != nil && !cmp.Equal(*u.draft, u.baseline)
}

func (u *directoryUsecase) reject(operation string, err *apperror.AppError) error {
	metrics.Observe(operation, metrics.OutcomeRejected)
	return err
}

// filtered returns the memoized filter result for the current collection
// version and term. Cached slices are shared and must not be mutated.
func (u *directoryUsecase) filtered(ctx context.Context, term string) (filterResult, error) {
	key := filterKey{version: u.repo.Version(), term: term}
	if hit, ok := u.filters.Get(key); ok {
		metrics.FilterCacheLookups.WithLabelValues("hit").Inc()
		return hit, nil
	}

	profiles, err := u.repo.List(ctx)
	if err != nil {
		return filterResult{}, err
	}
	result := filterResult{matches: domain.FilterProfiles(profiles, term), total: len(profiles)}
	u.filters.Add(key, result)
	metrics.FilterCacheLookups.WithLabelValues("miss").Inc()
	return result, nil
}

func (u *directoryUsecase) view(ctx context.Context) (*domain.DirectoryView, error) {
	return u.project(ctx, u.search)
}

func (u *directoryUsecase) project(ctx context.Context, term string) (*domain.DirectoryView, error) {
	result, err := u.filtered(ctx, term)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	profiles := result.matches

	today := u.clock()
	out := &domain.DirectoryView{
		Search:   term,
		Profiles: make([]domain.ProfileView, 0, len(profiles)),
		Total:    result.total,
		CanSave:  u.canSave(),
	}
	if u.openID != nil {
		id := *u.openID
		out.OpenID = &id
	}
	if u.editingID != nil {
		id := *u.editingID
		out.EditingID = &id
		draft := u.draft.Clone()
		out.Draft = &draft
	}

	for _, p := range profiles {
		pv := domain.ProfileView{Profile: p}
		if u.editingID != nil && *u.editingID == p.ID {
			pv.Profile = u.draft.Apply(p)
			pv.IsEditing = true
		}
		pv.IsOpen = u.openID != nil && *u.openID == p.ID
		if age, err := domain.Age(pv.DOB, today); err == nil {
			pv.Age = &age
		}
		out.Profiles = append(out.Profiles, pv)
	}
	return out, nil
}
