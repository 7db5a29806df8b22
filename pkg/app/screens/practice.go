package screens

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tavoli/pensvm/pkg/annotation"
	"github.com/tavoli/pensvm/pkg/app/styles"
	"github.com/tavoli/pensvm/pkg/data"
	"github.com/tavoli/pensvm/pkg/practice"
	"github.com/tavoli/pensvm/pkg/session"
)

// PracticeScreen runs one exercise sentence at a time, plus the summary
// once the learner advances past the last sentence.
type PracticeScreen struct {
	engine *session.Engine
	input  textinput.Model
	gapIdx int
}

func NewPracticeScreen(engine *session.Engine) *PracticeScreen {
	ti := textinput.New()
	ti.Placeholder = "ending"
	ti.CharLimit = 20
	ti.Width = 12
	return &PracticeScreen{engine: engine, input: ti}
}

func (s *PracticeScreen) Init() tea.Cmd {
	s.gapIdx = 0
	s.syncInput()
	return textinput.Blink
}

// syncInput points the text input at the currently selected gap.
func (s *PracticeScreen) syncInput() {
	sentence := s.engine.CurrentSentence()
	if sentence == nil {
		return
	}
	gaps := sentence.Gaps()
	if s.gapIdx >= len(gaps) {
		s.gapIdx = 0
	}
	if len(gaps) == 0 {
		return
	}
	s.input.SetValue(gaps[s.gapIdx].Answer)
	s.input.Focus()
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	if s.engine.State() == session.StateSummary {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
			s.engine.GoHome()
		}
		return s, nil
	}

	sentence := s.engine.CurrentSentence()
	if sentence == nil {
		return s, nil
	}
	gaps := sentence.Gaps()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			if len(gaps) > 0 {
				s.gapIdx = (s.gapIdx + 1) % len(gaps)
				s.syncInput()
			}
			return s, nil
		case "shift+tab":
			if len(gaps) > 0 {
				s.gapIdx = (s.gapIdx - 1 + len(gaps)) % len(gaps)
				s.syncInput()
			}
			return s, nil
		case "enter":
			if !s.engine.Checked() {
				s.engine.CheckSentence()
			} else {
				s.engine.NextSentence()
				s.gapIdx = 0
				s.syncInput()
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if len(gaps) > 0 && s.input.Value() != gaps[s.gapIdx].Answer {
		s.engine.AnswerGap(gaps[s.gapIdx].ID, s.input.Value())
	}
	return s, cmd
}

func (s *PracticeScreen) View() string {
	if s.engine.State() == session.StateSummary {
		return s.renderSummary()
	}

	ex := s.engine.Exercise()
	sentence := s.engine.CurrentSentence()
	if ex == nil || sentence == nil {
		return styles.MutedStyle.Render("Loading...")
	}

	header := styles.TitleStyle.Render(fmt.Sprintf("%s · sentence %d / %d",
		ex.Type, s.engine.SentenceIndex()+1, len(ex.Sentences)))

	line := s.renderSentence(sentence)

	var feedback string
	if s.engine.Checked() {
		feedback = s.renderFeedback(sentence)
	}

	var reference string
	if gaps := sentence.Gaps(); len(gaps) > 0 && s.gapIdx < len(gaps) {
		reference = renderGapReference(gaps[s.gapIdx])
	}

	action := "enter: check"
	if s.engine.Checked() {
		action = "enter: next"
	}
	help := styles.HelpStyle.Render(fmt.Sprintf("tab: next gap • %s • esc: back", action))

	return fmt.Sprintf("%s\n%s\n\n%s\n%s%s", header, line, reference, feedback, help)
}

// renderSentence shows the sentence with the active gap replaced by the
// text input and the other gaps by their current answers or blanks.
func (s *PracticeScreen) renderSentence(sentence *practice.Sentence) string {
	var b strings.Builder
	gapSeen := 0
	for _, part := range sentence.Parts {
		switch part.Kind {
		case data.PartGap:
			b.WriteString(styles.TextStyle.Render(part.Gap.Stem))
			if gapSeen == s.gapIdx {
				b.WriteString(s.input.View())
			} else if part.Gap.Answer != "" {
				b.WriteString(styles.GapStyle.Render(part.Gap.Answer))
			} else {
				b.WriteString(styles.GapStyle.Render("____"))
			}
			gapSeen++
		default:
			b.WriteString(styles.TextStyle.Render(part.Text))
		}
	}
	return b.String()
}

func (s *PracticeScreen) renderFeedback(sentence *practice.Sentence) string {
	var b strings.Builder
	for _, g := range sentence.Gaps() {
		switch g.Result() {
		case practice.Correct:
			b.WriteString(styles.CorrectStyle.Render(fmt.Sprintf("✓ %s%s", g.Stem, g.Ending)))
		case practice.Incorrect:
			b.WriteString(styles.IncorrectStyle.Render(fmt.Sprintf("✗ %s%s", g.Stem, g.Answer)))
			b.WriteString(styles.MutedStyle.Render(fmt.Sprintf(" → %s%s", g.Stem, g.Ending)))
		default:
			b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("– %s____", g.Stem)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderGapReference shows the dictionary lookup for the active gap.
func renderGapReference(g practice.Gap) string {
	if g.Lemma == "" {
		return ""
	}
	parts := []string{g.Lemma}
	if g.Genitive != "" {
		parts = append(parts, g.Genitive)
	}
	if g.Gender != "" {
		parts = append(parts, annotation.ExpandMorph(g.Gender))
	}
	if g.WordType != "" {
		parts = append(parts, annotation.ExpandPOS(g.WordType))
	}
	ref := strings.Join(parts, ", ")
	if g.Note != "" {
		ref += "\n" + styles.MutedStyle.Render(g.Note)
	}
	return styles.SubtitleStyle.Render(ref) + "\n"
}

func (s *PracticeScreen) renderSummary() string {
	score := s.engine.Score()
	header := styles.TitleStyle.Render("Finished!")

	duration := ""
	if !s.engine.EndedAt().IsZero() {
		duration = styles.MutedStyle.Render(
			fmt.Sprintf("time: %s", s.engine.EndedAt().Sub(s.engine.StartedAt()).Round(time.Second)))
	}

	result := fmt.Sprintf("%d / %d correct  (%d%%)", score.Correct, score.Total, score.Percent)
	if score.Percent == 100 {
		result = styles.CorrectStyle.Render(result)
	} else {
		result = styles.TextStyle.Render(result)
	}

	help := styles.HelpStyle.Render("enter: home • esc: back to exercises")
	return fmt.Sprintf("%s\n%s\n%s\n\n%s", header, result, duration, help)
}
