package tui_test

import (
	"context"
	"testing"
	"time"

	"profile-directory/internal/delivery/tui"
	"profile-directory/internal/domain"
	"profile-directory/internal/repository/memory"
	"profile-directory/internal/usecase"
	"profile-directory/pkg/validation"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter    = tea.KeyMsg{Type: tea.KeyEnter}
	down     = tea.KeyMsg{Type: tea.KeyDown}
	tab      = tea.KeyMsg{Type: tea.KeyTab}
	esc      = tea.KeyMsg{Type: tea.KeyEsc}
	ctrlS    = tea.KeyMsg{Type: tea.KeyCtrlS}
	right    = tea.KeyMsg{Type: tea.KeyRight}
	backspce = tea.KeyMsg{Type: tea.KeyBackspace}
)

func setup(t *testing.T) (tui.Model, domain.DirectoryUsecase, domain.ProfileRepository) {
	t.Helper()
	repo := memory.NewProfileRepository([]domain.Profile{
		{ID: 1, First: "Ada", Last: "Lovelace", DOB: "1985-12-10", Gender: "female", Country: "United Kingdom", Description: "Presenter"},
		{ID: 2, First: "Noah", Last: "Petersen", DOB: "2012-11-03", Gender: "male", Country: "Denmark", Description: "Child actor"},
	})
	uc, err := usecase.NewDirectoryUsecase(repo, validation.New(), usecase.DirectoryOptions{
		Clock: func() time.Time { return time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)

	m, err := tui.New(context.Background(), uc)
	require.NoError(t, err)
	return m, uc, repo
}

func send(m tui.Model, msgs ...tea.Msg) tui.Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(tui.Model)
	}
	return m
}

func TestModel(t *testing.T) {
	ctx := context.Background()

	t.Run("Should expand the highlighted profile", func(t *testing.T) {
		m, uc, _ := setup(t)
		m = send(m, down, enter)
		assert.Equal(t, 1, m.Cursor())

		v, _ := uc.View(ctx)
		require.NotNil(t, v.OpenID)
		assert.Equal(t, 2, *v.OpenID)
		assert.Contains(t, m.View(), "Denmark")
	})

	t.Run("Should show the age gate rejection until a key is pressed", func(t *testing.T) {
		m, uc, _ := setup(t)
		m = send(m, down, enter, keys("e"))
		assert.Equal(t, "Cannot edit details of users under 18 years old.", m.Alert())
		assert.Contains(t, m.View(), "press any key")

		m = send(m, keys("x"))
		assert.Empty(t, m.Alert())
		v, _ := uc.View(ctx)
		assert.Nil(t, v.EditingID)
	})

	t.Run("Should edit and save the country", func(t *testing.T) {
		m, _, repo := setup(t)
		m = send(m, enter, keys("e"))
		// name, dob, gender, country
		m = send(m, tab, tab, tab)
		for i := 0; i < len("United Kingdom"); i++ {
			m = send(m, backspce)
		}
		m = send(m, keys("Spain"), ctrlS)
		assert.Empty(t, m.Alert())

		p, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Spain", p.Country)
	})

	t.Run("Should surface validation rejections", func(t *testing.T) {
		m, _, repo := setup(t)
		m = send(m, enter, keys("e"), tab, tab, tab, keys("7"), ctrlS)
		assert.Equal(t, validation.MsgCountryDigits, m.Alert())

		p, _ := repo.GetByID(ctx, 1)
		assert.Equal(t, "United Kingdom", p.Country)
	})

	t.Run("Should cycle gender and cancel", func(t *testing.T) {
		m, uc, repo := setup(t)
		m = send(m, enter, keys("e"), tab, tab, right)

		v, _ := uc.View(ctx)
		require.NotNil(t, v.Draft)
		assert.Equal(t, domain.GenderTransgender, *v.Draft.Gender)

		m = send(m, esc)
		v, _ = uc.View(ctx)
		assert.Nil(t, v.EditingID)
		p, _ := repo.GetByID(ctx, 1)
		assert.Equal(t, "female", p.Gender)
	})

	t.Run("Should filter while typing in the search box", func(t *testing.T) {
		m, uc, _ := setup(t)
		m = send(m, keys("/"), keys("n"), keys("o"), keys("a"), enter)

		v, _ := uc.View(ctx)
		assert.Equal(t, "noa", v.Search)
		require.Len(t, v.Profiles, 1)
		assert.Equal(t, 2, v.Profiles[0].ID)
	})

	t.Run("Should delete the highlighted profile", func(t *testing.T) {
		m, uc, _ := setup(t)
		m = send(m, down, keys("d"))
		assert.Equal(t, 0, m.Cursor())

		v, _ := uc.View(ctx)
		assert.Equal(t, 1, v.Total)
	})
}
