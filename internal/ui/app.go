package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/catalog/internal/catalog"
	"github.com/abelbrown/catalog/internal/controller"
	"github.com/abelbrown/catalog/internal/diag"
	"github.com/abelbrown/catalog/internal/logging"
)

// Copy shown by the render states.
const (
	loadingText = "Loading Items..."
	emptyText   = "No items found matching your search."
	placeholder = "Search items..."
)

// Terminal size assumed until the first WindowSizeMsg.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// AppConfig wires the App to its collaborators.
type AppConfig struct {
	Controller *controller.Controller
	CardWidth  int

	// LoadThumbnail returns a Cmd producing a ThumbnailLoaded for item.
	// Nil disables thumbnails.
	LoadThumbnail func(item catalog.Item) tea.Cmd
}

// App is the root Bubble Tea model.
// IMPORTANT: App never mutates catalog state directly. Search and sort go
// through the controller, and the card grid is rebuilt from its view.
type App struct {
	ctrl          *controller.Controller
	loadThumbnail func(item catalog.Item) tea.Cmd

	search   textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model

	selected  catalog.ID
	hasSel    bool
	showDebug bool
	thumbs    map[catalog.ID]string
	cardWidth int
	rowHeight int
	width     int
	height    int
}

// NewApp creates the App for a controller whose load has been issued.
func NewApp(cfg AppConfig) App {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = SearchPrompt.Render("/ ")
	ti.CharLimit = 0
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorHighlight)

	cardWidth := cfg.CardWidth
	if cardWidth < 20 {
		cardWidth = 34
	}

	a := App{
		ctrl:          cfg.Controller,
		loadThumbnail: cfg.LoadThumbnail,
		search:        ti,
		spinner:       s,
		viewport:      viewport.New(defaultWidth, defaultHeight),
		help:          help.New(),
		thumbs:        make(map[catalog.ID]string),
		cardWidth:     cardWidth,
		width:         defaultWidth,
		height:        defaultHeight,
	}
	a.resize()
	return a
}

// Init starts the spinner and runs the controller's one load.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, textinput.Blink, a.load())
}

func (a App) load() tea.Cmd {
	ctrl := a.ctrl
	return func() tea.Msg {
		return ItemsLoaded{Result: ctrl.Load()}
	}
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		a.refresh()
		return a, nil

	case spinner.TickMsg:
		if !a.ctrl.Loading() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case ItemsLoaded:
		if !a.ctrl.Apply(msg.Result) {
			return a, nil
		}
		a.reselect()
		a.refresh()
		return a, a.thumbnailCmds()

	case ThumbnailLoaded:
		if msg.Err != nil {
			logging.Debug("thumbnail failed", "id", msg.ID, "err", msg.Err)
			a.ctrl.Events().Push(diag.Event{
				Kind:  diag.KindThumbError,
				Level: diag.LevelWarn,
				Msg:   string(msg.ID),
				Err:   msg.Err.Error(),
			})
			return a, nil
		}
		a.thumbs[msg.ID] = msg.Thumbnail
		a.refresh()
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)
	}

	return a, nil
}

// handleKeyMsg processes keyboard input.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		a.ctrl.Dispose()
		return a, tea.Quit
	}
	if key.Matches(msg, keys.Debug) {
		a.showDebug = !a.showDebug
		return a, nil
	}

	// Search and sort are not rendered while loading or after a failure.
	if a.ctrl.Loading() || a.ctrl.Failure() != nil {
		return a, nil
	}

	switch {
	case key.Matches(msg, keys.SortNext):
		a.setSort(a.ctrl.SortKey().Next())
		return a, nil
	case key.Matches(msg, keys.SortPrev):
		a.setSort(a.ctrl.SortKey().Prev())
		return a, nil
	case key.Matches(msg, keys.SortName):
		a.setSort(catalog.SortByName)
		return a, nil
	case key.Matches(msg, keys.SortPrice):
		a.setSort(catalog.SortByPrice)
		return a, nil
	case key.Matches(msg, keys.SortRating):
		a.setSort(catalog.SortByRating)
		return a, nil
	case key.Matches(msg, keys.Down):
		a.move(gridColumns(a.width, a.cardWidth))
		return a, nil
	case key.Matches(msg, keys.Up):
		a.move(-gridColumns(a.width, a.cardWidth))
		return a, nil
	case key.Matches(msg, keys.Next):
		a.move(1)
		return a, nil
	case key.Matches(msg, keys.Prev):
		a.move(-1)
		return a, nil
	case key.Matches(msg, keys.PageDown):
		a.viewport.SetYOffset(a.viewport.YOffset + a.viewport.Height)
		return a, nil
	case key.Matches(msg, keys.PageUp):
		a.viewport.SetYOffset(a.viewport.YOffset - a.viewport.Height)
		return a, nil
	case key.Matches(msg, keys.Help) && a.search.Value() == "":
		a.help.ShowAll = !a.help.ShowAll
		a.resize()
		a.refresh()
		return a, nil
	}

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	if a.search.Value() != a.ctrl.Search() {
		a.ctrl.SetSearch(a.search.Value())
		a.reselect()
		a.viewport.GotoTop()
		a.refresh()
		a.scrollToSelection()
	}
	return a, cmd
}

func (a *App) setSort(k catalog.SortKey) {
	a.ctrl.SetSortKey(k)
	a.refresh()
	a.scrollToSelection()
}

// move shifts the selection by delta cards, clamped to the view.
func (a *App) move(delta int) {
	view := a.ctrl.View()
	if len(view) == 0 {
		return
	}
	idx := a.selectedIndex(view) + delta
	idx = max(0, min(idx, len(view)-1))
	a.selected = view[idx].ID
	a.hasSel = true
	a.refresh()
	a.scrollToSelection()
}

// reselect keeps the selected item if it is still visible, otherwise
// selects the first item of the view.
func (a *App) reselect() {
	view := a.ctrl.View()
	if len(view) == 0 {
		a.hasSel = false
		return
	}
	if a.hasSel && indexOf(view, a.selected) >= 0 {
		return
	}
	a.selected = view[0].ID
	a.hasSel = true
}

func (a App) selectedIndex(view []catalog.Item) int {
	if !a.hasSel {
		return -1
	}
	return indexOf(view, a.selected)
}

func indexOf(items []catalog.Item, id catalog.ID) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// resize fits the viewport between the header and the footer.
func (a *App) resize() {
	a.viewport.Width = a.width
	h := a.height - lipgloss.Height(a.header()) - lipgloss.Height(a.footer())
	a.viewport.Height = max(1, h)
	a.help.Width = a.width
}

// refresh rebuilds the card grid from the controller's view.
func (a *App) refresh() {
	view := a.ctrl.View()
	grid, rowHeight := RenderGrid(view, a.width, a.cardWidth, a.selectedIndex(view), a.thumbs)
	a.rowHeight = rowHeight
	a.viewport.SetContent(grid)
}

// scrollToSelection moves the viewport so the selected card's row is visible.
func (a *App) scrollToSelection() {
	idx := a.selectedIndex(a.ctrl.View())
	if idx < 0 || a.rowHeight == 0 {
		return
	}
	top := (idx / gridColumns(a.width, a.cardWidth)) * a.rowHeight
	bottom := top + a.rowHeight
	switch {
	case top < a.viewport.YOffset:
		a.viewport.SetYOffset(top)
	case bottom > a.viewport.YOffset+a.viewport.Height:
		a.viewport.SetYOffset(bottom - a.viewport.Height)
	}
}

func (a App) thumbnailCmds() tea.Cmd {
	if a.loadThumbnail == nil {
		return nil
	}
	items := a.ctrl.Items()
	cmds := make([]tea.Cmd, 0, len(items))
	for _, item := range items {
		if item.Image == "" {
			continue
		}
		cmds = append(cmds, a.loadThumbnail(item))
	}
	return tea.Batch(cmds...)
}

// View renders the UI.
func (a App) View() string {
	if a.showDebug {
		if overlay := debugOverlay(a.ctrl.Events(), a.width, a.height); overlay != "" {
			return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, overlay)
		}
	}

	if a.ctrl.Loading() {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
			a.spinner.View()+" "+LoadingStyle.Render(loadingText))
	}

	if f := a.ctrl.Failure(); f != nil {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
			ErrorStyle.Render(f.Message)+"\n\n"+CardPrice.Render("press esc to quit"))
	}

	var body string
	if len(a.ctrl.View()) == 0 {
		body = lipgloss.PlaceHorizontal(a.width, lipgloss.Center, EmptyStyle.Render(emptyText))
	} else {
		body = a.viewport.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, a.header(), body, a.footer())
}

// header renders the search input and the sort selector.
func (a App) header() string {
	options := make([]string, 0, 3)
	for _, k := range catalog.SortKeys() {
		if k == a.ctrl.SortKey() {
			options = append(options, SortOptionActive.Render(k.Label()))
		} else {
			options = append(options, SortOption.Render(k.Label()))
		}
	}
	selector := CardPrice.Render("Sort: ") + strings.Join(options, "")
	return lipgloss.JoinVertical(lipgloss.Left, a.search.View(), selector, "")
}

// footer renders the status bar and key help.
func (a App) footer() string {
	status := fmt.Sprintf("%d of %d items │ sort: %s", len(a.ctrl.View()), len(a.ctrl.Items()), a.ctrl.SortKey().Label())
	return lipgloss.JoinVertical(lipgloss.Left,
		StatusBar.Width(a.width).Render(status),
		a.help.View(keys),
	)
}

// Controller returns the app's controller (for testing).
func (a App) Controller() *controller.Controller {
	return a.ctrl
}

// Selected returns the selected item id and whether one is selected.
func (a App) Selected() (catalog.ID, bool) {
	return a.selected, a.hasSel
}
