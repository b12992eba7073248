package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	conversation "github.com/sadhana-0705/farmerbot/core"
	"github.com/sadhana-0705/farmerbot/core/events"
)

const notificationLifetime = 4 * time.Second

var (
	headerStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	statusStyle       = lipgloss.NewStyle().Faint(true)
	userStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	botStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	pendingStyle      = lipgloss.NewStyle().Faint(true).Italic(true)
	faqStyle          = lipgloss.NewStyle().Faint(true)
	helpStyle         = lipgloss.NewStyle().Faint(true)
	infoNotifStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	successNotifStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorNotifStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type coreEventMsg struct {
	event events.Event
}

type notificationExpiredMsg struct {
	seq int
}

type model struct {
	controller *conversation.Controller

	viewport viewport.Model
	input    textinput.Model
	ready    bool
	width    int
	height   int

	faq      []conversation.FAQItem
	faqIndex int

	notification      string
	notificationLevel events.NotificationLevel
	notificationSeq   int

	speaking bool
}

func newModel(controller *conversation.Controller) model {
	input := textinput.New()
	input.Placeholder = "Ask about your crops..."
	input.Prompt = "> "
	input.Focus()

	return model{
		controller: controller,
		input:      input,
		faqIndex:   -1,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		chromeHeight := lipgloss.Height(m.headerView()) + lipgloss.Height(m.footerView())
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-chromeHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - chromeHeight
		}
		m.input.Width = msg.Width - 4
		m.refreshHistory()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			if err := m.controller.Submit(context.Background(), m.input.Value()); err != nil {
				return m, nil
			}
			return m, nil

		case "ctrl+l":
			next := conversation.LanguageMalayalam
			if m.controller.Language() == conversation.LanguageMalayalam {
				next = conversation.LanguageEnglish
			}
			m.controller.SetLanguage(context.Background(), next)
			return m, nil

		case "ctrl+v":
			m.controller.ToggleVoiceInput(context.Background())
			return m, nil

		case "tab":
			if len(m.faq) > 0 {
				m.faqIndex = (m.faqIndex + 1) % len(m.faq)
				m.controller.SetDraft(m.faq[m.faqIndex].Question)
			}
			return m, nil
		}

	case coreEventMsg:
		return m.handleCoreEvent(msg.event)

	case notificationExpiredMsg:
		if msg.seq == m.notificationSeq {
			m.notification = ""
		}
		return m, nil
	}

	var inputCmd, viewportCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	m.viewport, viewportCmd = m.viewport.Update(msg)
	return m, tea.Batch(inputCmd, viewportCmd)
}

func (m model) handleCoreEvent(event events.Event) (tea.Model, tea.Cmd) {
	switch event.Kind() {
	case events.KindMessagePending, events.KindMessageConfirmed,
		events.KindMessageFailed, events.KindHistoryHydrated:
		m.refreshHistory()
	case events.KindSynthesisStarted:
		m.speaking = true
	case events.KindSynthesisEnded, events.KindSynthesisFailed:
		m.speaking = false
	}

	switch typedEvent := event.(type) {
	case events.DraftUpdated:
		m.input.SetValue(typedEvent.Text)
		m.input.CursorEnd()

	case events.FAQUpdated:
		m.faq = typedEvent.Items
		m.faqIndex = -1

	case events.Notification:
		m.notification = typedEvent.Text
		m.notificationLevel = typedEvent.Level
		m.notificationSeq++
		seq := m.notificationSeq
		return m, tea.Tick(notificationLifetime, func(time.Time) tea.Msg {
			return notificationExpiredMsg{seq: seq}
		})
	}
	return m, nil
}

func (m *model) refreshHistory() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
}

func (m model) renderHistory() string {
	history := m.controller.History()
	if len(history) == 0 {
		return pendingStyle.Render("No messages yet. Ask a question, or press tab to pick a suggested one.")
	}

	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	for _, msg := range history {
		b.WriteString(userStyle.Render("You: "))
		b.WriteString(wordwrap.String(msg.Text, width-6))
		b.WriteString("\n")

		if msg.Status == conversation.MessageStatusPending {
			b.WriteString(pendingStyle.Render("sending..."))
		} else {
			b.WriteString(botStyle.Render(wordwrap.String(msg.Response, width-2)))
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

func (m model) headerView() string {
	title := headerStyle.Render("Farmer Assistant")

	language := "EN"
	if m.controller.Language() == conversation.LanguageMalayalam {
		language = "ML"
	}

	badges := []string{language}
	if m.controller.Listening() {
		badges = append(badges, "listening")
	}
	if m.speaking {
		badges = append(badges, "speaking")
	}
	if m.controller.InFlight() {
		badges = append(badges, "sending")
	}

	status := statusStyle.Render(fmt.Sprintf("[%s]", strings.Join(badges, " | ")))
	return title + " " + status + "\n"
}

func (m model) footerView() string {
	var b strings.Builder

	if m.notification != "" {
		style := infoNotifStyle
		switch m.notificationLevel {
		case events.NotificationSuccess:
			style = successNotifStyle
		case events.NotificationError:
			style = errorNotifStyle
		}
		b.WriteString(style.Render(m.notification))
	}
	b.WriteString("\n")

	if m.faqIndex >= 0 && m.faqIndex < len(m.faq) {
		b.WriteString(faqStyle.Render(fmt.Sprintf("suggestion %d/%d", m.faqIndex+1, len(m.faq))))
	}
	b.WriteString("\n")

	b.WriteString(m.input.View())
	b.WriteString("\n")

	help := "enter: send | tab: suggestions | ctrl+l: language | ctrl+c: quit"
	if m.controller.VoiceInputSupported() {
		help = "enter: send | tab: suggestions | ctrl+l: language | ctrl+v: voice | ctrl+c: quit"
	}
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

func (m model) View() string {
	if !m.ready {
		return "loading..."
	}
	return m.headerView() + m.viewport.View() + "\n" + m.footerView()
}
