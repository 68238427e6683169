package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/blueprintmrk/graphy/pkg/chartio"
	"github.com/blueprintmrk/graphy/pkg/errors"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Definition discovery
// =============================================================================

// definitionEntry is one candidate definition file shown in the picker.
type definitionEntry struct {
	Path   string
	Name   string // chart name from the definition, or "—" if unreadable
	Kind   string
	Series int
	Valid  bool
}

// findDefinitions lists the TOML and JSON definition files directly under dir,
// decoding each to surface its chart name and kind in the picker. Files that
// fail to decode are listed but marked invalid.
func findDefinitions(dir string) ([]definitionEntry, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var entries []definitionEntry
	for _, de := range dirents {
		if de.IsDir() {
			continue
		}
		ext := filepath.Ext(de.Name())
		if ext != ".toml" && ext != ".json" {
			continue
		}
		path := filepath.Join(dir, de.Name())
		entry := definitionEntry{Path: path, Name: "—", Kind: "—"}
		if def, err := chartio.DecodeFile(path); err == nil {
			entry.Name = def.Name
			entry.Kind = def.Kind
			entry.Series = len(def.Series)
			entry.Valid = true
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// pickDefinition opens an interactive picker over the definition files in
// dir and returns the chosen path.
func pickDefinition(dir string) (string, error) {
	entries, err := findDefinitions(dir)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", errors.New(errors.ErrCodeFileNotFound,
			"no definition files (*.toml, *.json) found in %s", dir)
	}

	model := NewDefinitionListModel(entries)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(DefinitionListModel)
	if !ok || m.Selected == nil {
		return "", errors.New(errors.ErrCodeInvalidInput, "no definition selected")
	}
	return m.Selected.Path, nil
}

// =============================================================================
// DefinitionListModel - Interactive definition selection
// =============================================================================

// DefinitionListModel is the bubbletea model for interactive definition
// selection.
type DefinitionListModel struct {
	Entries  []definitionEntry
	Cursor   int
	Selected *definitionEntry
	Height   int
	Offset   int
}

// NewDefinitionListModel creates a new definition list model.
func NewDefinitionListModel(entries []definitionEntry) DefinitionListModel {
	return DefinitionListModel{
		Entries: entries,
		Height:  15,
	}
}

func (m DefinitionListModel) Init() tea.Cmd {
	return nil
}

func (m DefinitionListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			entry := m.Entries[m.Cursor]
			if !entry.Valid {
				return m, nil
			}
			m.Selected = &entry
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m DefinitionListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Chart Definition"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		series := "—"
		if e.Valid {
			series = fmt.Sprintf("%d", e.Series)
		}
		rows = append(rows, []string{cursor, filepath.Base(e.Path), e.Name, e.Kind, series})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "File", "Chart", "Kind", "Series").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Entries) {
				return lipgloss.NewStyle()
			}
			e := m.Entries[actualIdx]
			isCurrent := actualIdx == m.Cursor

			if isCurrent {
				if e.Valid {
					return listSelectedStyle
				}
				return lipgloss.NewStyle().Foreground(colorDim).Bold(true)
			}
			if !e.Valid {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}
