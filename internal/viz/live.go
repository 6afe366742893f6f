package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/optiray/optiray/internal/model"
	"github.com/optiray/optiray/internal/physics"
	"github.com/optiray/optiray/internal/sweep"
	"github.com/optiray/optiray/internal/trace"
)

type TickMsg time.Time

// LiveModel steps through a spectral sweep one wavelength per frame so the
// response curve builds up on screen.
type LiveModel struct {
	tracer  *trace.Tracer
	samples []float64
	entries []model.SweepEntry
	next    int
	running bool
	done    bool
}

func NewLiveModel(tracer *trace.Tracer, startNm, stopNm float64, points int) LiveModel {
	return LiveModel{
		tracer:  tracer,
		samples: sweep.Samples(startNm, stopNm, points),
		entries: make([]model.SweepEntry, 0, points),
		running: true,
	}
}

func (m LiveModel) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}
	case TickMsg:
		if m.running && !m.done {
			m.step()
		}
		if m.done {
			return m, nil
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *LiveModel) step() {
	if m.next >= len(m.samples) {
		m.done = true
		return
	}

	nm := m.samples[m.next]
	result := m.tracer.Trace(nm)

	total := 0.0
	for _, v := range result.DetectorReadings {
		total += v
	}
	m.entries = append(m.entries, model.SweepEntry{
		WavelengthNm:         nm,
		FrequencyTHz:         physics.WavelengthToFrequencyTHz(nm),
		PerDetectorIntensity: result.DetectorReadings,
		TotalIntensity:       total,
	})
	m.next++
	if m.next >= len(m.samples) {
		m.done = true
	}
}

func (m LiveModel) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("SPECTRAL SWEEP") + "\n")

	switch {
	case m.done:
		b.WriteString(doneStyle.Render("complete") + "\n\n")
	case !m.running:
		b.WriteString(warnStyle.Render("paused") + "\n\n")
	default:
		b.WriteString(fmt.Sprintf("tracing %d/%d\n\n", m.next, len(m.samples)))
	}

	if len(m.entries) > 1 {
		values := make([]float64, len(m.entries))
		for i, e := range m.entries {
			values[i] = e.TotalIntensity
		}
		chart := asciigraph.Plot(values, asciigraph.Height(10), asciigraph.Width(60))
		b.WriteString(graphStyle.Render(chart) + "\n")
	}

	if len(m.entries) > 0 {
		last := m.entries[len(m.entries)-1]
		b.WriteString(labelStyle.Render("Wavelength") + valueStyle.Render(fmt.Sprintf("%.1fnm", last.WavelengthNm)) + "\n")
		b.WriteString(labelStyle.Render("Frequency") + valueStyle.Render(fmt.Sprintf("%.1f THz", last.FrequencyTHz)) + "\n")
		b.WriteString(labelStyle.Render("Intensity") + valueStyle.Render(fmt.Sprintf("%.4f", last.TotalIntensity)) + "\n")
	}

	b.WriteString(helpStyle.Render("space: pause  q: quit"))
	return b.String()
}

// Entries returns everything traced so far, for saving after the TUI exits.
func (m LiveModel) Entries() []model.SweepEntry {
	return m.entries
}
