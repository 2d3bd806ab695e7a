package dated

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/certcheck/internal/eligibility"
	"github.com/abhisek/certcheck/internal/router"
	"github.com/abhisek/certcheck/internal/screen"
	"github.com/abhisek/certcheck/internal/screens/summary"
	"github.com/abhisek/certcheck/internal/ui/components"
	"github.com/abhisek/certcheck/internal/ui/layout"
	"github.com/abhisek/certcheck/internal/ui/theme"
)

type fieldKind int

const (
	fieldSeries fieldKind = iota
	fieldYear
	fieldCompleted
	fieldDate
	fieldResit
	fieldResitDate
)

// field is one focusable row. comp indexes forms for per-component rows.
type field struct {
	kind fieldKind
	comp int
}

// componentForm holds the inputs for one component.
type componentForm struct {
	kind      eligibility.ComponentKind
	completed bool
	resit     bool
	date      components.DateInput
	resitDate components.DateInput
}

// DatedScreen collects completion and resit dates per component and
// re-evaluates eligibility as the user types.
type DatedScreen struct {
	evaluator *eligibility.Evaluator
	policy    string
	timeline  eligibility.Timeline

	series  []eligibility.Series
	years   []int
	seriesP components.Picker
	yearP   components.Picker

	forms   []componentForm
	focus   int
	verdict eligibility.Verdict
}

var _ screen.Screen = (*DatedScreen)(nil)
var _ screen.KeyHintProvider = (*DatedScreen)(nil)

// New creates an empty DatedScreen.
func New(e *eligibility.Evaluator, policy string) *DatedScreen {
	tl := e.Config().Timeline

	var series []eligibility.Series
	var years []int
	seenS := map[eligibility.Series]bool{}
	seenY := map[int]bool{}
	for _, info := range tl.Sessions {
		if !seenS[info.Series] {
			seenS[info.Series] = true
			series = append(series, info.Series)
		}
		if !seenY[info.Year] {
			seenY[info.Year] = true
			years = append(years, info.Year)
		}
	}

	seriesNames := make([]string, len(series))
	for i, s := range series {
		seriesNames[i] = s.DisplayName()
	}
	yearNames := make([]string, len(years))
	for i, y := range years {
		yearNames[i] = fmt.Sprintf("Year %d", y)
	}

	comps := eligibility.AllComponents()
	forms := make([]componentForm, len(comps))
	for i, c := range comps {
		forms[i] = componentForm{
			kind:      c,
			date:      components.NewDateInput("Completion date"),
			resitDate: components.NewDateInput("Resit date"),
		}
	}

	d := &DatedScreen{
		evaluator: e,
		policy:    policy,
		timeline:  tl,
		series:    series,
		years:     years,
		seriesP:   components.NewPicker("Series", seriesNames),
		yearP:     components.NewPicker("Year", yearNames),
		forms:     forms,
	}
	d.reevaluate()
	return d
}

func (d *DatedScreen) Init() tea.Cmd {
	return nil
}

func (d *DatedScreen) Title() string {
	return "Date Entry"
}

// fields lists the rows currently visible. Date rows appear once a
// component is marked completed, the resit date once a resit is marked.
func (d *DatedScreen) fields() []field {
	out := []field{{kind: fieldSeries}, {kind: fieldYear}}
	for i, f := range d.forms {
		out = append(out, field{kind: fieldCompleted, comp: i})
		if !f.completed {
			continue
		}
		out = append(out, field{kind: fieldDate, comp: i}, field{kind: fieldResit, comp: i})
		if f.resit {
			out = append(out, field{kind: fieldResitDate, comp: i})
		}
	}
	return out
}

func (d *DatedScreen) focused() field {
	fs := d.fields()
	if d.focus >= len(fs) {
		d.focus = len(fs) - 1
	}
	return fs[d.focus]
}

// current resolves the series and year pickers to a session.
func (d *DatedScreen) current() *eligibility.Session {
	if d.seriesP.Selected < 0 || d.yearP.Selected < 0 {
		return nil
	}
	s, ok := d.timeline.FromSeriesYear(d.series[d.seriesP.Selected], d.years[d.yearP.Selected])
	if !ok {
		return nil
	}
	return &s
}

// Selection builds the DatedSelection from the form. Unparseable dates are
// treated as not provided.
func (d *DatedScreen) Selection() eligibility.DatedSelection {
	sel := eligibility.DatedSelection{
		Current:    d.current(),
		Components: make(map[eligibility.ComponentKind]eligibility.ComponentRecord, len(d.forms)),
	}
	for _, f := range d.forms {
		rec := eligibility.ComponentRecord{Completed: f.completed, Resit: f.resit}
		if t, ok := f.date.Date(); ok {
			rec.Date = t
		}
		if t, ok := f.resitDate.Date(); ok {
			rec.ResitDate = t
		}
		sel.Components[f.kind] = rec
	}
	return sel
}

// Verdict returns the verdict for the current form.
func (d *DatedScreen) Verdict() eligibility.Verdict {
	return d.verdict
}

func (d *DatedScreen) reevaluate() {
	d.verdict = d.evaluator.EvaluateDated(d.Selection())
}

func (d *DatedScreen) report() summary.Report {
	sel := d.Selection()
	r := summary.Report{
		Policy:   d.policy,
		Attempts: d.evaluator.ChronologyDated(sel),
		Verdict:  d.verdict,
	}
	if sel.Current != nil {
		r.Current = d.timeline.Label(*sel.Current)
	}
	return r
}

// moveFocus shifts focus by delta and focuses the date input under it.
func (d *DatedScreen) moveFocus(delta int) tea.Cmd {
	n := len(d.fields())
	d.focus = (d.focus + delta + n) % n
	return d.syncInputFocus()
}

func (d *DatedScreen) syncInputFocus() tea.Cmd {
	f := d.focused()
	var cmd tea.Cmd
	for i := range d.forms {
		form := &d.forms[i]
		if f.kind == fieldDate && f.comp == i {
			cmd = form.date.Focus()
		} else {
			form.date.Blur()
		}
		if f.kind == fieldResitDate && f.comp == i {
			cmd = form.resitDate.Focus()
		} else {
			form.resitDate.Blur()
		}
	}
	return cmd
}

func (d *DatedScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return d, d.updateInput(msg)
	}

	switch kmsg.String() {
	case "down", "tab":
		return d, d.moveFocus(1)
	case "up", "shift+tab":
		return d, d.moveFocus(-1)
	case "enter":
		report := d.report()
		return d, func() tea.Msg {
			return router.PushScreenMsg{Screen: summary.New(report)}
		}
	}

	f := d.focused()
	var cmd tea.Cmd
	switch f.kind {
	case fieldSeries:
		d.seriesP, _ = d.seriesP.Update(kmsg)
	case fieldYear:
		d.yearP, _ = d.yearP.Update(kmsg)
	case fieldCompleted:
		if isToggle(kmsg) {
			d.forms[f.comp].completed = !d.forms[f.comp].completed
		}
	case fieldResit:
		if isToggle(kmsg) {
			d.forms[f.comp].resit = !d.forms[f.comp].resit
		}
	case fieldDate, fieldResitDate:
		cmd = d.updateInput(kmsg)
	}

	d.reevaluate()
	return d, cmd
}

// updateInput forwards msg to the focused date input, if any.
func (d *DatedScreen) updateInput(msg tea.Msg) tea.Cmd {
	f := d.focused()
	var cmd tea.Cmd
	switch f.kind {
	case fieldDate:
		d.forms[f.comp].date, cmd = d.forms[f.comp].date.Update(msg)
	case fieldResitDate:
		d.forms[f.comp].resitDate, cmd = d.forms[f.comp].resitDate.Update(msg)
	}
	return cmd
}

func isToggle(k tea.KeyPressMsg) bool {
	switch k.String() {
	case "space", " ", "x":
		return true
	}
	return false
}

func (d *DatedScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "←→", Description: "Choose"},
		{Key: "Space", Description: "Toggle"},
		{Key: "Enter", Description: "Summary"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DatedScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	f := d.focused()
	is := func(kind fieldKind, comp int) bool {
		return f.kind == kind && f.comp == comp
	}

	var cur strings.Builder
	cur.WriteString(d.seriesP.View(f.kind == fieldSeries))
	cur.WriteString("\n")
	cur.WriteString(d.yearP.View(f.kind == fieldYear))

	var comps strings.Builder
	for i, form := range d.forms {
		if i > 0 {
			comps.WriteString("\n")
		}
		comps.WriteString(components.Checkbox(form.kind.DisplayName(), form.completed, is(fieldCompleted, i)))
		if !form.completed {
			continue
		}
		comps.WriteString("\n    ")
		comps.WriteString(form.date.View(is(fieldDate, i)))
		comps.WriteString("\n    ")
		comps.WriteString(components.Checkbox("Resit taken", form.resit, is(fieldResit, i)))
		if form.resit {
			comps.WriteString("\n    ")
			comps.WriteString(form.resitDate.View(is(fieldResitDate, i)))
		}
	}
	comps.WriteString("\n\n")
	comps.WriteString(theme.Hint.Render("Dates use YYYY-MM-DD"))

	sections := []string{
		components.Card("Current series", cur.String(), cw),
		components.Card("Components", comps.String(), cw),
		components.VerdictBanner(d.verdict, cw),
	}
	return components.Center(strings.Join(sections, "\n"), width, height)
}
