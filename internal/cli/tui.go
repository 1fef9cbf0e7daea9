package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/repolens/pkg/deps/languages"
	"github.com/matzehuels/repolens/pkg/source"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// ManifestListModel is the bubbletea model for interactive manifest selection.
// Manifests without an extractor (lockfiles) are listed but dimmed.
type ManifestListModel struct {
	Manifests []source.File
	Cursor    int
	Selected  *source.File
	Height    int
	Offset    int
}

func NewManifestListModel(manifests []source.File) ManifestListModel {
	return ManifestListModel{Manifests: manifests, Height: 15}
}

func (m ManifestListModel) Init() tea.Cmd {
	return nil
}

func (m ManifestListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Manifests)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Manifests) == 0 {
				return m, tea.Quit
			}
			selected := m.Manifests[m.Cursor]
			m.Selected = &selected
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m ManifestListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Manifest File"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Manifests))
	for i := m.Offset; i < end; i++ {
		mf := m.Manifests[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		_, supported := languages.Default.Extractor(mf.Name)
		status := StyleSuccess.Render("*")
		if !supported {
			status = StyleWarning.Render("!")
		}
		lang, _ := languages.Default.Language(mf.Name)

		line := fmt.Sprintf("%s%s %-32s  %s", cursor, status, mf.Path, listDimStyle.Render(lang))
		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case !supported:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if len(m.Manifests) > m.Height {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("\n  %d-%d of %d", m.Offset+1, end, len(m.Manifests))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s dependencies   %s lockfile only\n",
		StyleSuccess.Render("*"), StyleWarning.Render("!")))

	return b.String()
}
