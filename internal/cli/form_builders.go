package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PicoEvanZhu/workdeck/internal/cli/formatter"
	"github.com/PicoEvanZhu/workdeck/internal/domain"
	"github.com/PicoEvanZhu/workdeck/internal/relay"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// workdeckHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func workdeckHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// itemFormValues holds the string-typed form state for an item form.
type itemFormValues struct {
	Title      string
	Type       string
	State      string
	AssignedTo string
	Priority   string
	Planned    string
	Target     string
	Estimate   string
	Remaining  string
	Tags       string
}

func itemFormValuesFrom(item domain.WorkItem) itemFormValues {
	v := itemFormValues{
		Title:      item.Title,
		Type:       item.Type,
		State:      item.State,
		AssignedTo: item.AssignedTo,
		Tags:       strings.Join(item.Tags, ", "),
	}
	if item.Priority > 0 {
		v.Priority = strconv.Itoa(item.Priority)
	}
	if item.PlannedStartDate != nil {
		v.Planned = item.PlannedStartDate.Format("2006-01-02")
	}
	if item.TargetDate != nil {
		v.Target = item.TargetDate.Format("2006-01-02")
	}
	if item.OriginalEstimate > 0 {
		v.Estimate = strconv.FormatFloat(item.OriginalEstimate, 'f', -1, 64)
	}
	if item.Remaining > 0 {
		v.Remaining = strconv.FormatFloat(item.Remaining, 'f', -1, 64)
	}
	return v
}

// newItemForm builds the create/edit form writing into vals.
func newItemForm(vals *itemFormValues) *huh.Form {
	types := make([]string, 0, len(domain.ValidWorkItemTypes))
	for t := range domain.ValidWorkItemTypes {
		types = append(types, t)
	}
	sort.Strings(types)

	states := []string{
		domain.StateNew, domain.StateActive, domain.StateValidate,
		domain.StateResolved, domain.StateClosed,
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&vals.Title).
				Validate(validateRequired),
			huh.NewSelect[string]().
				Title("Type").
				Options(huh.NewOptions(types...)...).
				Value(&vals.Type),
			huh.NewSelect[string]().
				Title("State").
				Options(huh.NewOptions(states...)...).
				Value(&vals.State),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Assigned To (blank for unassigned)").
				Value(&vals.AssignedTo),
			huh.NewInput().
				Title("Priority (1-4, blank to keep)").
				Value(&vals.Priority).
				Validate(validateOptionalInt),
			huh.NewInput().
				Title("Tags (comma separated)").
				Value(&vals.Tags),
		),
		huh.NewGroup(
			dateInput("Planned Start (YYYY-MM-DD, blank for none)", &vals.Planned),
			dateInput("Target Date (YYYY-MM-DD, blank for none)", &vals.Target),
			huh.NewInput().
				Title("Original Estimate (hours)").
				Value(&vals.Estimate).
				Validate(validateOptionalFloat),
			huh.NewInput().
				Title("Remaining (hours)").
				Value(&vals.Remaining).
				Validate(validateOptionalFloat),
		),
	).WithTheme(workdeckHuhTheme()).WithShowHelp(false)
}

// newCommentForm builds a single-field discussion entry form.
func newCommentForm(text *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Comment").
				Value(text).
				Validate(validateRequired),
		),
	).WithTheme(workdeckHuhTheme()).WithShowHelp(false)
}

// huhConfirm builds a yes/no confirmation form.
func huhConfirm(title string, value *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("Cancel").
				Value(value),
		),
	).WithTheme(workdeckHuhTheme()).WithShowHelp(false)
}

// dateInput returns a huh.Input for an optional date field with
// YYYY-MM-DD validation.
func dateInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("2025-06-30").
		Value(value).
		Validate(validateOptionalDate)
}

// fields converts form values into the partial update payload. Only
// fields that changed against prev are set, so the relay sees a minimal
// patch.
func (v itemFormValues) fields(prev itemFormValues) relay.ItemFields {
	var f relay.ItemFields
	strField := func(cur, old string) *string {
		if cur == old {
			return nil
		}
		return &cur
	}
	f.Title = strField(v.Title, prev.Title)
	f.WorkItemType = strField(v.Type, prev.Type)
	f.State = strField(v.State, prev.State)
	f.AssignedTo = strField(v.AssignedTo, prev.AssignedTo)
	f.PlannedStartDate = strField(v.Planned, prev.Planned)
	f.TargetDate = strField(v.Target, prev.Target)

	if v.Priority != prev.Priority {
		if n, err := strconv.Atoi(strings.TrimSpace(v.Priority)); err == nil {
			f.Priority = &n
		}
	}
	if v.Estimate != prev.Estimate {
		if h, err := strconv.ParseFloat(strings.TrimSpace(v.Estimate), 64); err == nil {
			f.OriginalEstimate = &h
		}
	}
	if v.Remaining != prev.Remaining {
		if h, err := strconv.ParseFloat(strings.TrimSpace(v.Remaining), 64); err == nil {
			f.Remaining = &h
		}
	}
	if v.Tags != prev.Tags {
		f.Tags = splitTags(v.Tags)
	}
	return f
}

func splitTags(s string) []string {
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func validateOptionalInt(s string) error {
	if s == "" {
		return nil
	}
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("enter a whole number")
	}
	return nil
}

func validateOptionalFloat(s string) error {
	if s == "" {
		return nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || n < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}
