// Package tui renders the profile directory in a terminal. It reads the
// usecase's view and dispatches operations; it never mutates state itself.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"profile-directory/internal/domain"
	"profile-directory/pkg/apperror"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type focusArea int

const (
	focusList focusArea = iota
	focusSearch
)

// Model is the bubbletea model for the directory screen
type Model struct {
	ctx    context.Context
	uc     domain.DirectoryUsecase
	view   *domain.DirectoryView
	styles Styles

	search   textinput.Model
	input    textinput.Model
	focus    focusArea
	cursor   int
	fieldIdx int

	// alert is a blocking rejection message; any key dismisses it
	alert string
}

// New builds the model and loads the initial view
func New(ctx context.Context, uc domain.DirectoryUsecase) (Model, error) {
	search := textinput.New()
	search.Placeholder = "Search user"
	search.Prompt = "/ "

	m := Model{
		ctx:    ctx,
		uc:     uc,
		styles: DefaultStyles(),
		search: search,
		input:  textinput.New(),
	}

	view, err := uc.View(ctx)
	if err != nil {
		return m, err
	}
	m.view = view
	m.search.SetValue(view.Search)
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Alert returns the blocking message currently shown, if any
func (m Model) Alert() string {
	return m.alert
}

// Cursor returns the index of the highlighted profile
func (m Model) Cursor() int {
	return m.cursor
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.alert != "" {
			m.alert = ""
			return m, nil
		}
		if m.editing() {
			return m.updateForm(msg)
		}
		if m.focus == focusSearch {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.view.Profiles)-1 {
			m.cursor++
		}
	case "/":
		m.focus = focusSearch
		cmd := m.search.Focus()
		return m, cmd
	case "enter", " ":
		if p, ok := m.current(); ok {
			m.apply(m.uc.Toggle(m.ctx, p.ID))
		}
	case "e":
		if p, ok := m.current(); ok {
			m.apply(m.uc.BeginEdit(m.ctx, p.ID))
			if m.editing() {
				m.fieldIdx = 0
				cmd := m.focusField()
				return m, cmd
			}
		}
	case "d":
		if p, ok := m.current(); ok {
			m.apply(m.uc.Delete(m.ctx, p.ID))
		}
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "down", "tab":
		m.focus = focusList
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.view.Search {
		m.apply(m.uc.SetSearch(m.ctx, m.search.Value()))
		m.cursor = 0
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	field := domain.EditableFields[m.fieldIdx]

	switch msg.String() {
	case "esc":
		m.apply(m.uc.CancelEdit(m.ctx))
		m.input.Blur()
		return m, nil
	case "ctrl+s":
		if m.view.CanSave {
			m.apply(m.uc.SaveEdit(m.ctx, *m.view.EditingID))
			if !m.editing() {
				m.input.Blur()
			}
		}
		return m, nil
	case "tab":
		m.fieldIdx = (m.fieldIdx + 1) % len(domain.EditableFields)
		cmd := m.focusField()
		return m, cmd
	case "shift+tab":
		m.fieldIdx = (m.fieldIdx + len(domain.EditableFields) - 1) % len(domain.EditableFields)
		cmd := m.focusField()
		return m, cmd
	}

	if field == domain.FieldGender {
		switch msg.String() {
		case "left", "right":
			step := 1
			if msg.String() == "left" {
				step = len(domain.Genders) - 1
			}
			next := domain.Genders[(genderIndex(m.editingProfile().Gender)+step)%len(domain.Genders)]
			m.apply(m.uc.ChangeField(m.ctx, field, next))
		}
		return m, nil
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.apply(m.uc.ChangeField(m.ctx, field, m.input.Value()))
	}
	return m, cmd
}

// focusField loads the focused field's display value into the input
func (m *Model) focusField() tea.Cmd {
	p := m.editingProfile()
	field := domain.EditableFields[m.fieldIdx]

	m.input.Prompt = ""
	switch field {
	case domain.FieldName:
		m.input.SetValue(strings.TrimSpace(p.FullName()))
	case domain.FieldDOB:
		m.input.SetValue(p.DOB)
	case domain.FieldCountry:
		m.input.SetValue(p.Country)
	case domain.FieldDescription:
		m.input.SetValue(p.Description)
	case domain.FieldGender:
		m.input.Blur()
		return nil
	}
	m.input.CursorEnd()
	return m.input.Focus()
}

// apply installs a new view, or raises the rejection as a blocking alert
func (m *Model) apply(view *domain.DirectoryView, err error) {
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			m.alert = appErr.Message
		} else {
			m.alert = err.Error()
		}
		return
	}
	m.view = view
	if m.cursor >= len(view.Profiles) {
		m.cursor = max(len(view.Profiles)-1, 0)
	}
}

func (m Model) editing() bool {
	return m.view != nil && m.view.EditingID != nil
}

func (m Model) current() (domain.ProfileView, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Profiles) {
		return domain.ProfileView{}, false
	}
	return m.view.Profiles[m.cursor], true
}

func (m Model) editingProfile() domain.ProfileView {
	for _, p := range m.view.Profiles {
		if p.IsEditing {
			return p
		}
	}
	// filtered out by the search term; fall back to the draft alone
	var p domain.ProfileView
	if m.view.Draft != nil {
		p.Profile = m.view.Draft.Apply(p.Profile)
	}
	return p
}

func genderIndex(g string) int {
	for i, v := range domain.Genders {
		if v == g {
			return i
		}
	}
	return 0
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("Profile Directory"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Search.Render(m.search.View()))
	sb.WriteString("\n")

	if len(m.view.Profiles) == 0 {
		sb.WriteString(m.styles.Help.Render("  No matching profiles"))
		sb.WriteString("\n")
	}
	for i, p := range m.view.Profiles {
		sb.WriteString(m.renderRow(i, p))
	}

	if m.alert != "" {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Alert.Render(m.alert))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Help.Render(m.help()))
	return sb.String()
}

func (m Model) renderRow(i int, p domain.ProfileView) string {
	marker := "▸"
	if p.IsOpen {
		marker = "▾"
	}
	age := "?"
	if p.Age != nil {
		age = fmt.Sprintf("%d", *p.Age)
	}
	line := fmt.Sprintf("%s %s (%s)", marker, strings.TrimSpace(p.FullName()), age)

	style := m.styles.Row
	if i == m.cursor && m.focus == focusList {
		style = m.styles.Cursor
	}
	out := style.Render(line) + "\n"
	if p.IsOpen {
		out += m.styles.Detail.Render(m.renderDetails(p)) + "\n"
	}
	return out
}

func (m Model) renderDetails(p domain.ProfileView) string {
	rows := []struct {
		field, label, value string
	}{
		{domain.FieldName, "Name", strings.TrimSpace(p.FullName())},
		{domain.FieldDOB, "Date of birth", p.DOB},
		{domain.FieldGender, "Gender", capitalize(p.Gender)},
		{domain.FieldCountry, "Country", p.Country},
		{domain.FieldDescription, "Description", p.Description},
	}

	var sb strings.Builder
	for i, r := range rows {
		value := r.value
		if p.IsEditing && i == m.fieldIdx {
			if r.field == domain.FieldGender {
				value = m.styles.Focused.Render("‹ " + value + " ›")
			} else {
				value = m.input.View()
			}
		}
		sb.WriteString(m.styles.Label.Render(r.label))
		sb.WriteString(value)
		if i < len(rows)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (m Model) help() string {
	switch {
	case m.alert != "":
		return "press any key to continue"
	case m.editing():
		save := "ctrl+s save"
		if !m.view.CanSave {
			save = m.styles.Disabled.Render(save)
		}
		return "tab next field • ←/→ gender • " + save + " • esc cancel"
	case m.focus == focusSearch:
		return "type to filter • enter/esc back to list"
	default:
		return "↑/↓ move • enter expand • e edit • d delete • / search • q quit"
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
