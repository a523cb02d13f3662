package cx52wizard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	hagelin "github.com/cryptosim/hagelin/pkg"
)

var (
	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	pinStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("255"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

// View renders the UI
func (m wizardModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	sections := []string{m.renderHeader()}
	for _, g := range m.machine.VisibleGroups() {
		sections = append(sections, m.renderGroup(g))
	}
	sections = append(sections, m.renderFooter())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// Add error display if needed
	if m.err != nil {
		content += "\n\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	return " " + strings.ReplaceAll(content, "\n", "\n ")
}

func (m wizardModel) renderHeader() string {
	title := titleStyle.Render("Hagelin " + m.machine.SelectedModel() + " Setup")
	state := m.machine.State().String()
	if m.machine.ShowAll() {
		state += " (showing all)"
	}
	subtitle := subtitleStyle.Render(state + " - " + m.machine.Hint())
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle)
}

func (m wizardModel) renderGroup(g hagelin.Group) string {
	var body string
	switch g {
	case hagelin.GroupModel:
		body = m.renderModelGroup()
	case hagelin.GroupWheels:
		body = m.renderWheelsGroup()
	case hagelin.GroupBars:
		body = m.barsVP.View()
	case hagelin.GroupPins:
		body = m.renderPinsGroup()
	case hagelin.GroupLugs:
		body = m.renderLugsGroup()
	case hagelin.GroupExternalKey:
		body = m.renderExternalKeyGroup()
	case hagelin.GroupModeOp:
		body = m.renderModeOpGroup()
	case hagelin.GroupText:
		body = m.renderTextGroup()
	case hagelin.GroupSummary:
		body = m.renderSummaryGroup()
	}
	return lipgloss.JoinVertical(lipgloss.Left, sectionStyle.Render(g.String()), body)
}

// row renders one list line, highlighted when it is under the cursor of the
// active list.
func (m wizardModel) row(list listKind, i int, text string) string {
	if m.activeList() == list && m.cursor == i {
		return selectedStyle.Render("▸ " + text)
	}
	return normalStyle.Render("  " + text)
}

func (m wizardModel) renderModelGroup() string {
	var lines []string
	for _, model := range hagelin.MachineModels {
		text := fmt.Sprintf("%-8s %s", model.DisplayName(), model.String())
		if model == m.machine.Model() {
			lines = append(lines, selectedStyle.Render("▸ "+text))
		} else {
			lines = append(lines, normalStyle.Render("  "+text))
		}
	}
	counts := fmt.Sprintf("%d wheels, %d bars", m.machine.NumberOfWheels(), m.machine.NumberOfBars())
	if m.machine.CountsEditable() {
		counts += " (</> in the wheel and bar steps)"
	}
	lines = append(lines, "", subtitleStyle.Render(counts))
	return strings.Join(lines, "\n")
}

func (m wizardModel) renderWheelsGroup() string {
	var lines []string
	for i, w := range m.machine.Wheels() {
		text := fmt.Sprintf("Wheel %d  type %-8s at %s", i+1, w.TypeName, w.Position())
		lines = append(lines, m.row(listWheels, i, text))
	}
	return strings.Join(lines, "\n")
}

// barsContent builds the content string for the bar viewport.
func (m wizardModel) barsContent() string {
	var lines []string
	for i, b := range m.machine.Bars() {
		id := "custom"
		if b.CatalogID != 0 {
			id = fmt.Sprintf("#%d", b.CatalogID)
		}
		text := fmt.Sprintf("Bar %2d  %-14s %-7s", i+1, b.Symbol(), id)
		if b.HasLugs {
			lugs := b.LugPositions
			if lugs == "" {
				lugs = "-"
			}
			text += " lugs " + lugs
		}
		lines = append(lines, m.row(listBars, i, text))
	}
	return strings.Join(lines, "\n")
}

// renderPinsGroup draws each wheel's labels in wheel order with the active
// pins highlighted.
func (m wizardModel) renderPinsGroup() string {
	var lines []string
	for i, w := range m.machine.Wheels() {
		wt, ok := hagelin.LookupWheelType(w.TypeName)
		if !ok {
			continue
		}
		var strip strings.Builder
		for k := 0; k < len(wt.Labels); k++ {
			label := wt.Labels[k : k+1]
			if strings.Contains(w.ActivePins, label) {
				strip.WriteString(pinStyle.Render(label))
			} else {
				strip.WriteString("·")
			}
		}
		text := fmt.Sprintf("Wheel %d  %2d/%-2d ", i+1, len(w.ActivePins), wt.Size())
		lines = append(lines, m.row(listWheels, i, text)+strip.String())
	}
	return strings.Join(lines, "\n")
}

// renderLugsGroup counts how many bars engage each wheel.
func (m wizardModel) renderLugsGroup() string {
	counts := make([]int, m.machine.NumberOfWheels())
	for _, b := range m.machine.Bars() {
		if !b.HasLugs || b.LugPositions == "" {
			continue
		}
		for _, p := range strings.Split(b.LugPositions, ",") {
			if w, err := strconv.Atoi(p); err == nil && w >= 1 && w <= len(counts) {
				counts[w-1]++
			}
		}
	}
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = fmt.Sprintf("%d:%d", i+1, c)
	}
	return normalStyle.Render("  lugs per wheel  " + strings.Join(parts, "  "))
}

func (m wizardModel) renderExternalKeyGroup() string {
	var lines []string
	for i, w := range m.machine.Wheels() {
		lines = append(lines, m.row(listWheels, i, fmt.Sprintf("Wheel %d  %s", i+1, w.Position())))
	}
	lines = append(lines, "", successStyle.Render("Key: "+m.machine.WheelsState()))
	return strings.Join(lines, "\n")
}

func (m wizardModel) renderModeOpGroup() string {
	s := m.machine.Settings()
	values := [settingRowCount]string{
		rowMode:      "Mode            " + s.Mode.String(),
		rowOffset:    fmt.Sprintf("Offset          %d", s.Offset),
		rowUnknown:   "Unknown symbols " + s.UnknownSymbol.String(),
		rowCase:      "Case            " + s.Case.String(),
		rowGroupSize: fmt.Sprintf("Group size      %d", s.GroupSize),
	}
	lines := make([]string, 0, len(values))
	for i, v := range values {
		lines = append(lines, m.row(listSettings, i, v))
	}
	return strings.Join(lines, "\n")
}

func (m wizardModel) renderTextGroup() string {
	s := m.machine.Settings()
	text := fmt.Sprintf("%s with key %s, offset %d", s.Mode, m.machine.WheelsState(), s.Offset)
	if s.GroupSize > 0 {
		text += fmt.Sprintf(", groups of %d", s.GroupSize)
	}
	if m.machine.State() == hagelin.EncryptionDone {
		return successStyle.Render("Done: " + text)
	}
	return normalStyle.Render("  " + text)
}

func (m wizardModel) renderSummaryGroup() string {
	bars := lipgloss.NewStyle().Width(max(m.width-16, 20)).Render(m.machine.SelectedBars())
	return lipgloss.JoinVertical(lipgloss.Left,
		normalStyle.Render("  Model  "+m.machine.SelectedModel()),
		normalStyle.Render("  Wheels "+m.machine.SelectedWheels()),
		normalStyle.Render("  State  "+m.machine.WheelsState()),
		lipgloss.JoinHorizontal(lipgloss.Top, normalStyle.Render("  Bars   "), bars),
	)
}

func (m wizardModel) renderFooter() string {
	help := "Enter: Apply • Esc: Back • Ctrl+R: Reset • a: Show all • ↑/↓/←/→: Edit"
	switch m.activeList() {
	case listWheels:
		help += " • +/-: Rotate • p: Random pins • w: Reset wheels"
		if m.machine.State() == hagelin.InnerKeySetupPins {
			help += " • Space: Toggle pin"
		}
	case listBars:
		help += " • l: Random lugs"
	}
	help += " • q: Quit"

	if len(m.changes.names) > 0 {
		help += "\n" + fmt.Sprintf("Changed #%d: %s", m.changes.seq, strings.Join(m.changes.names, ", "))
	}
	return helpStyle.Render(help)
}
