package ui

import (
	"context"
	"fmt"

	"github.com/barboracab/hangthedj/internal/catalog"
	"github.com/barboracab/hangthedj/internal/room"
	"github.com/barboracab/hangthedj/internal/shared"
	"github.com/barboracab/hangthedj/internal/store"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	JoinView ViewState = iota
	QueueView
	SuggestionView
)

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	session *room.Session
	width   int
	height  int

	roomInput  textinput.Model
	nickInput  textinput.Model
	focusIndex int

	searchInput   textinput.Model
	searchFocused bool

	queueList      list.Model
	suggestionList list.Model

	status string
	err    error
	help   help.Model
	keys   keyMap
}

type joinedMsg struct {
	err error
}

type queueUpdatedMsg []store.Song

type suggestionsMsg struct {
	tracks []catalog.Track
	err    error
}

type songAddedMsg struct {
	title string
	err   error
}

type votedMsg struct {
	err error
}

// NewModel creates a new TUI model around a not-yet-joined session.
func NewModel(ctx context.Context, session *room.Session) *Model {
	roomInput := textinput.New()
	roomInput.Placeholder = "room"
	roomInput.CharLimit = 64
	roomInput.Focus()

	nickInput := textinput.New()
	nickInput.Placeholder = "nickname"
	nickInput.CharLimit = 64

	searchInput := textinput.New()
	searchInput.Placeholder = "search the catalog or type a title"
	searchInput.CharLimit = 128

	return &Model{
		ctx:         ctx,
		view:        JoinView,
		session:     session,
		roomInput:   roomInput,
		nickInput:   nickInput,
		searchInput: searchInput,
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.queueList.Width() != 0 {
			m.queueList.SetSize(msg.Width-4, msg.Height-10)
		}
		if m.suggestionList.Width() != 0 {
			m.suggestionList.SetSize(msg.Width-4, msg.Height-10)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case JoinView:
			return m.handleJoinKeys(msg)
		case QueueView:
			return m.handleQueueKeys(msg)
		case SuggestionView:
			return m.handleSuggestionKeys(msg)
		}

	case joinedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.view = QueueView
		m.queueList = list.New(nil, list.NewDefaultDelegate(), 0, 0)
		m.queueList.Title = fmt.Sprintf("Room '%s'", m.session.Room())
		m.queueList.SetShowHelp(false)
		m.queueList.SetSize(m.width-4, m.height-10)
		m.setQueue(m.session.Queue())
		return m, m.waitForSync()

	case queueUpdatedMsg:
		m.setQueue([]store.Song(msg))
		return m, m.waitForSync()

	case suggestionsMsg:
		if msg.err != nil {
			m.status = "search failed, try again"
			return m, nil
		}
		if len(msg.tracks) == 0 {
			m.status = "no matches"
			return m, nil
		}
		items := make([]list.Item, len(msg.tracks))
		for i, track := range msg.tracks {
			items[i] = suggestionItem{track: track}
		}
		m.suggestionList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.suggestionList.Title = "Suggestions"
		m.suggestionList.SetShowHelp(false)
		m.suggestionList.SetSize(m.width-4, m.height-10)
		m.view = SuggestionView
		m.status = ""
		return m, nil

	case songAddedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("could not add: %v", msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("added '%s'", msg.title)
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.searchFocused = false
		m.view = QueueView
		m.setQueue(m.session.Queue())
		return m, nil

	case votedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("vote failed: %v", msg.err)
			return m, nil
		}
		m.setQueue(m.session.Queue())
		return m, nil
	}

	return m.updateActive(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case JoinView:
		return m.renderJoin()
	case QueueView:
		return m.renderQueue()
	case SuggestionView:
		return m.renderSuggestions()
	default:
		return ""
	}
}

func (m *Model) handleJoinKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "shift+tab", "up", "down":
		m.focusIndex = (m.focusIndex + 1) % 2
		if m.focusIndex == 0 {
			m.nickInput.Blur()
			return m, m.roomInput.Focus()
		}
		m.roomInput.Blur()
		return m, m.nickInput.Focus()
	case "enter":
		room := shared.NormalizeRoomID(m.roomInput.Value())
		nick := m.nickInput.Value()
		if room == "" || nick == "" {
			m.err = fmt.Errorf("%w: room and nickname are required", shared.ErrInvalidInput)
			return m, nil
		}
		return m, m.join(room, nick)
	}

	var cmds [2]tea.Cmd
	m.roomInput, cmds[0] = m.roomInput.Update(msg)
	m.nickInput, cmds[1] = m.nickInput.Update(msg)
	return m, tea.Batch(cmds[0], cmds[1])
}

func (m *Model) handleQueueKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchFocused {
		switch msg.String() {
		case "esc":
			m.searchFocused = false
			m.searchInput.Blur()
			return m, nil
		case "enter":
			query := m.searchInput.Value()
			if query == "" {
				return m, nil
			}
			m.status = "searching..."
			return m, m.suggest(query)
		case "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.search):
		m.searchFocused = true
		return m, m.searchInput.Focus()
	case key.Matches(msg, m.keys.add):
		title := m.searchInput.Value()
		if title == "" {
			m.status = "type a title first (press / to edit)"
			return m, nil
		}
		return m, m.addSong(title)
	case key.Matches(msg, m.keys.upvote):
		return m, m.voteSelected(1)
	case key.Matches(msg, m.keys.downvote):
		return m, m.voteSelected(-1)
	}

	var cmd tea.Cmd
	m.queueList, cmd = m.queueList.Update(msg)
	return m, cmd
}

func (m *Model) handleSuggestionKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = QueueView
		return m, nil
	case "enter":
		selected := m.suggestionList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(suggestionItem); ok {
				return m, m.addTrack(item.track)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.suggestionList, cmd = m.suggestionList.Update(msg)
	return m, cmd
}

func (m *Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case QueueView:
		m.queueList, cmd = m.queueList.Update(msg)
	case SuggestionView:
		m.suggestionList, cmd = m.suggestionList.Update(msg)
	}
	return m, cmd
}

func (m *Model) setQueue(queue []store.Song) {
	items := make([]list.Item, len(queue))
	for i, song := range queue {
		items[i] = songItem{song: song}
	}
	m.queueList.SetItems(items)
}

func (m *Model) join(roomID, nickname string) tea.Cmd {
	return func() tea.Msg {
		return joinedMsg{err: m.session.Join(m.ctx, roomID, nickname)}
	}
}

// waitForSync re-issues itself after each queue snapshot, keeping the list
// current as other participants add songs and vote.
func (m *Model) waitForSync() tea.Cmd {
	return func() tea.Msg {
		queue, ok := <-m.session.Updates()
		if !ok {
			return nil
		}
		return queueUpdatedMsg(queue)
	}
}

func (m *Model) suggest(query string) tea.Cmd {
	return func() tea.Msg {
		tracks, err := m.session.Suggest(m.ctx, query)
		return suggestionsMsg{tracks: tracks, err: err}
	}
}

func (m *Model) addSong(title string) tea.Cmd {
	return func() tea.Msg {
		return songAddedMsg{title: title, err: m.session.AddSong(m.ctx, title)}
	}
}

func (m *Model) addTrack(track catalog.Track) tea.Cmd {
	return func() tea.Msg {
		return songAddedMsg{title: track.DisplayTitle(), err: m.session.AddTrack(m.ctx, track)}
	}
}

func (m *Model) voteSelected(delta int) tea.Cmd {
	selected := m.queueList.SelectedItem()
	if selected == nil {
		return nil
	}
	item, ok := selected.(songItem)
	if !ok {
		return nil
	}

	return func() tea.Msg {
		return votedMsg{err: m.session.Vote(m.ctx, item.song.ID, delta)}
	}
}

func (m *Model) renderJoin() string {
	title := styles.title.Render("Hang the DJ")

	var errLine string
	if m.err != nil {
		errLine = styles.err.Render(fmt.Sprintf("\n%v\n", m.err))
	}

	helpLine := styles.help.Render("tab switch • enter join • esc quit")

	return fmt.Sprintf(
		"%s\n\n%s\n%s\n%s\n\n%s",
		title, m.roomInput.View(), m.nickInput.View(), errLine, helpLine,
	)
}

func (m *Model) renderQueue() string {
	var statusLine string
	if m.status != "" {
		statusLine = styles.warn.Render(m.status)
	}

	helpKeys := []key.Binding{m.keys.search, m.keys.add, m.keys.upvote, m.keys.downvote, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf(
		"%s\n%s\n%s\n%s",
		m.queueList.View(), m.searchInput.View(), statusLine, helpView,
	)
}

func (m *Model) renderSuggestions() string {
	addKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add to queue"))
	helpKeys := []key.Binding{addKey, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n\n%s", m.suggestionList.View(), helpView)
}
