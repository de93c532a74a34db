package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/0xlemi/pitchcore/internal/noteutil"
	"github.com/0xlemi/pitchcore/internal/pitch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			PaddingLeft(2).
			PaddingRight(2).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC"))

	debugStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	noSoundStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#888888")).
			Bold(true).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333333")).
			Padding(2, 4).
			MarginBottom(1)

	// Standard box size
	boxWidth = 8

	// Note colors (moderate, not too bright, not too pastel)
	noteColors = map[string]string{
		"C": "#D9C399", // Moderate Beige
		"D": "#9370DB", // Medium Purple
		"E": "#E6E675", // Moderate Yellow
		"F": "#E69138", // Moderate Orange
		"G": "#6AA84F", // Moderate Green
		"A": "#CC0000", // Moderate Red
		"B": "#3D85C6", // Moderate Blue
	}
)

// Returns a style for a note
func getNoteStyle(noteName string) lipgloss.Style {
	if strings.HasSuffix(noteName, "#") {
		// For sharp notes, we handle the rendering separately in View()
		// Just return a basic style
		return lipgloss.NewStyle().Bold(true).MarginBottom(1)
	}

	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color(noteColors[noteName])).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#333333")).
		Padding(2, 4).
		MarginBottom(1)
}

// displayNote is the rendered representation of one PitchResult: the
// nearest note name/octave/cents alongside the raw detector output.
type displayNote struct {
	name       string
	octave     int
	cents      float64
	frequency  float64
	confidence float64
}

// Model represents the UI state
type Model struct {
	currentNote  *displayNote
	lastUpdate   time.Time
	width        int
	height       int
	isSilence    bool      // Whether we're currently detecting silence
	silenceSince time.Time // When we first detected silence
	audioRMS     float64   // Current RMS level
	audioDB      float64   // Current dB level
	showDebug    bool      // Whether to show debug info
	kind         pitch.DetectorKind
}

// NewModel creates a new UI model for the given detector kind.
func NewModel(kind pitch.DetectorKind) Model {
	return Model{
		currentNote:  nil,
		lastUpdate:   time.Now(),
		isSilence:    true,
		silenceSince: time.Now(),
		showDebug:    true,
		kind:         kind,
	}
}

// Init initializes the UI model
func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// TickMsg represents a timer tick
type TickMsg time.Time

// UpdatePitchMsg carries a fresh PitchResult from the capture loop.
type UpdatePitchMsg pitch.PitchResult

// UpdateAudioLevelMsg is a message to update the audio level display
type UpdateAudioLevelMsg struct {
	RMS float64
	DB  float64
}

// ClearNoteMsg is sent when we should clear the note display (no sound detected)
type ClearNoteMsg struct{}

// Update handles the model update based on a message
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "d":
			m.showDebug = !m.showDebug
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case TickMsg:
		return m, tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
			return TickMsg(t)
		})

	case UpdatePitchMsg:
		result := pitch.PitchResult(msg)
		if result.IsNoPitch() {
			m.currentNote = nil
			m.isSilence = true
			m.silenceSince = time.Now()
			break
		}
		disp := noteutil.Round(result.PitchHz)
		m.currentNote = &displayNote{
			name:       disp.Name,
			octave:     disp.Octave,
			cents:      disp.Cents,
			frequency:  result.PitchHz,
			confidence: result.Confidence,
		}
		m.isSilence = false
		m.lastUpdate = time.Now()

	case UpdateAudioLevelMsg:
		m.audioRMS = msg.RMS
		m.audioDB = msg.DB

	case ClearNoteMsg:
		m.currentNote = nil
		m.isSilence = true
		m.silenceSince = time.Now()
	}

	return m, nil
}

// getNextNote returns the next note in the scale (C -> D, D -> E, etc.)
func getNextNote(note string) string {
	noteOrder := []string{"C", "D", "E", "F", "G", "A", "B"}
	for i, n := range noteOrder {
		if n == note {
			if i < len(noteOrder)-1 {
				return noteOrder[i+1]
			}
			return noteOrder[0]
		}
	}
	return note
}

// View renders the UI
func (m Model) View() string {
	s := titleStyle.Render(fmt.Sprintf("pitchcore — %s", m.kind))
	s += "\n"

	if m.currentNote != nil {
		noteStyle := getNoteStyle(m.currentNote.name)
		noteText := fmt.Sprintf("%s%d", m.currentNote.name, m.currentNote.octave)

		if strings.HasSuffix(m.currentNote.name, "#") {
			baseNote := string(m.currentNote.name[0])
			nextNote := getNextNote(baseNote)

			baseColor := noteColors[baseNote]
			nextColor := noteColors[nextNote]

			joinedStyle := lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#333333")).
				Padding(2, 4).
				Width(boxWidth / 2).
				Align(lipgloss.Center).
				MarginBottom(1)

			baseStyle := joinedStyle.Background(lipgloss.Color(baseColor))
			sharpStyle := joinedStyle.Background(lipgloss.Color(nextColor))

			baseChar := string(noteText[0])
			sharpChar := "#"
			octave := noteText[2:]

			s += lipgloss.JoinHorizontal(lipgloss.Top,
				baseStyle.Render(baseChar),
				sharpStyle.Render(sharpChar+octave))
		} else {
			noteStyle = noteStyle.Width(boxWidth).Align(lipgloss.Center)
			s += noteStyle.Render(noteText)
		}

		s += "\n"

		info := fmt.Sprintf("Frequency: %.2f Hz | Cents: %+.1f | Confidence: %.2f",
			m.currentNote.frequency,
			m.currentNote.cents,
			m.currentNote.confidence)
		s += infoStyle.Render(info)
	} else {
		placeholder := noSoundStyle.Width(boxWidth).Align(lipgloss.Center).Render("---")
		s += placeholder
		s += "\n"
		s += infoStyle.Render("Make a sound to see the note...")
	}

	s += "\n"

	if m.showDebug {
		dbInfo := fmt.Sprintf("Audio Level: RMS=%.6f, dB=%.1f", m.audioRMS, m.audioDB)
		s += debugStyle.Render(dbInfo)
		s += "\n"
	}

	s += "\n"
	s += infoStyle.Render("Press d to toggle debug info | Press q to quit")

	return s
}
