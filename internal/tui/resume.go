package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/LupasteanRaoul/myjob-careercopilot/internal/api"
	"github.com/LupasteanRaoul/myjob-careercopilot/internal/ui"
)

type resumeModel struct {
	ctx  context.Context
	deps Deps

	fields    []*field
	focus     int
	analyzing bool
	lastLog   string

	// Replaced wholesale on each analysis, never merged.
	result *api.ResumeAnalysis
}

type resumeAnalyzedMsg struct {
	result *api.ResumeAnalysis
	err    error
}

func newResumeModel(ctx context.Context, deps Deps) *resumeModel {
	return &resumeModel{
		ctx:  ctx,
		deps: deps,
		fields: []*field{
			{label: "Resume PDF path"},
			{label: "Job description (or @file path)"},
		},
	}
}

func (m *resumeModel) Init() tea.Cmd { return nil }

func (m *resumeModel) capturing() bool { return true }

func (m *resumeModel) analyzeCmd() tea.Cmd {
	pdfPath := strings.TrimSpace(m.fields[0].value)
	jobDesc := strings.TrimSpace(m.fields[1].value)
	return func() tea.Msg {
		content, err := os.ReadFile(pdfPath)
		if err != nil {
			return resumeAnalyzedMsg{err: fmt.Errorf("read resume: %w", err)}
		}
		if strings.HasPrefix(jobDesc, "@") {
			data, err := os.ReadFile(strings.TrimPrefix(jobDesc, "@"))
			if err != nil {
				return resumeAnalyzedMsg{err: fmt.Errorf("read job description: %w", err)}
			}
			jobDesc = string(data)
		}
		result, err := m.deps.Client.AnalyzeResume(m.ctx, filepath.Base(pdfPath), content, jobDesc)
		return resumeAnalyzedMsg{result: result, err: err}
	}
}

func (m *resumeModel) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case resumeAnalyzedMsg:
		m.analyzing = false
		if msg.err != nil {
			m.lastLog = "Analysis failed: " + msg.err.Error()
			return m, nil
		}
		m.result = msg.result
		m.lastLog = ""
		return m, nil

	case tea.KeyMsg:
		if m.analyzing {
			return m, nil
		}
		switch msg.Type {
		case tea.KeyTab, tea.KeyDown:
			m.focus = (m.focus + 1) % len(m.fields)
			return m, nil
		case tea.KeyShiftTab, tea.KeyUp:
			m.focus = (m.focus - 1 + len(m.fields)) % len(m.fields)
			return m, nil
		case tea.KeyEnter:
			if m.focus < len(m.fields)-1 {
				m.focus++
				return m, nil
			}
			if strings.TrimSpace(m.fields[0].value) == "" || strings.TrimSpace(m.fields[1].value) == "" {
				m.lastLog = "resume path and job description are required"
				return m, nil
			}
			m.analyzing = true
			m.lastLog = ""
			return m, m.analyzeCmd()
		}
		m.fields[m.focus].handleKey(msg)
		return m, nil
	}
	return m, nil
}

func (m *resumeModel) View() string {
	var b strings.Builder
	b.WriteString("\n" + ui.Heading(ui.IconDoc, "Resume ATS Scorer") + "\n\n")

	for i, f := range m.fields {
		b.WriteString("  " + f.view(i == m.focus) + "\n")
	}
	b.WriteString("\n")

	if m.analyzing {
		b.WriteString("  " + ui.Muted.Render("Analyzing resume against the job description…") + "\n")
	}
	if m.lastLog != "" {
		b.WriteString("  " + ui.Bad.Render(m.lastLog) + "\n")
	}

	if m.result != nil {
		b.WriteString("\n" + m.resultView())
	}
	b.WriteString("\n  " + ui.Dim.Render("enter: analyze   tab: next field") + "\n")
	return b.String()
}

func (m *resumeModel) resultView() string {
	r := m.result
	var b strings.Builder

	b.WriteString("  " + ui.LabelValue("ATS score", ui.ScoreText(r.ATSScore)+"  "+r.ScoreLabel) + "\n\n")

	matching := mapset.NewSet(r.MatchingKeywords...)
	// A keyword the model lists on both sides counts as matched.
	missing := mapset.NewSet(r.MissingKeywords...).Difference(matching)

	match := matching.ToSlice()
	sort.Strings(match)
	miss := missing.ToSlice()
	sort.Strings(miss)

	b.WriteString(ui.H2.Render("  Matching keywords") + "\n")
	b.WriteString("  " + ui.Good.Render(strings.Join(match, ", ")) + "\n\n")
	b.WriteString(ui.H2.Render("  Missing keywords") + "\n")
	b.WriteString("  " + ui.Warn.Render(strings.Join(miss, ", ")) + "\n\n")

	b.WriteString(ui.H2.Render("  Strengths") + "\n")
	for _, s := range r.Strengths {
		b.WriteString("  - " + s + "\n")
	}
	b.WriteString("\n" + ui.H2.Render("  Improvements") + "\n")
	for _, s := range r.Improvements {
		b.WriteString("  - " + s + "\n")
	}
	if r.TailoredSummary != "" {
		b.WriteString("\n" + ui.H2.Render("  Tailored summary") + "\n")
		b.WriteString("  " + r.TailoredSummary + "\n")
	}
	if r.OverallAssessment != "" {
		b.WriteString("\n  " + ui.Muted.Render(r.OverallAssessment) + "\n")
	}
	return b.String()
}
