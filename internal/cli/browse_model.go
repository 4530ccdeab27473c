package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"

	"job-finder/internal/catalog"
	"job-finder/internal/model"
	"job-finder/internal/saved"
	"job-finder/internal/theme"
)

type browseMode int

const (
	browseModeWelcome browseMode = iota
	browseModeList
	browseModeDetail
	browseModeApply
	browseModeSort
)

type browseTab int

const (
	browseTabJobs browseTab = iota
	browseTabSaved
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusError
)

const toastDuration = 2 * time.Second

// popularCategories are the quick filters bound to keys 1-7.
var popularCategories = []string{"Software Engineer", "Manager", "Senior", "Sales", "Marketing", "Developer", "Analyst"}

var (
	jobsSortOptions  = []model.SortKey{model.SortTitle, model.SortCompany, model.SortSalary, model.SortNone}
	savedSortOptions = []model.SortKey{model.SortTitle, model.SortCompany, model.SortNone}
)

// listState is the search/sort/cursor of one tab. Each tab keeps its own.
type listState struct {
	search  string
	sortKey model.SortKey
	cursor  int
}

type browseOptions struct {
	Catalog     *catalog.Catalog
	Saved       *saved.Set
	Theme       theme.Mode
	Debounce    time.Duration
	SkipWelcome bool
}

type browseModel struct {
	ctx     context.Context
	catalog *catalog.Catalog
	saved   *saved.Set

	styles    theme.Styles
	keys      browseKeyMap
	help      help.Model
	spinner   spinner.Model
	search    textinput.Model
	searching bool
	debounce  time.Duration
	searchSeq int

	tab     browseTab
	lists   [2]listState
	visible []model.Job

	mode       browseMode
	detail     model.Job
	viewport   viewport.Model
	form       *applyForm
	sortCursor int

	loading bool
	loadErr error

	statusMessage string
	statusKind    statusKind
	toastSeq      int

	width  int
	height int

	writeClipboard func(string) error
	openURL        func(string) error
}

type jobsLoadedMsg struct {
	count  int
	report catalog.LoadReport
	err    error
}

type searchDebounceMsg struct {
	seq int
}

type toastExpiredMsg struct {
	seq int
}

func newBrowseModel(ctx context.Context, opts browseOptions) browseModel {
	if ctx == nil {
		ctx = context.Background()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "job title or company"
	search.CharLimit = 120

	mode := browseModeWelcome
	if opts.SkipWelcome {
		mode = browseModeList
	}

	m := browseModel{
		ctx:            ctx,
		catalog:        opts.Catalog,
		saved:          opts.Saved,
		styles:         theme.New(opts.Theme),
		keys:           newBrowseKeyMap(),
		help:           help.New(),
		spinner:        sp,
		search:         search,
		debounce:       opts.Debounce,
		mode:           mode,
		loading:        true,
		width:          100,
		height:         30,
		writeClipboard: clipboard.WriteAll,
		openURL:        browser.OpenURL,
	}
	m.lists[browseTabJobs].sortKey = model.SortNone
	m.lists[browseTabSaved].sortKey = model.SortNone
	m.spinner.Style = m.styles.Title
	return m
}

func (m browseModel) Init() tea.Cmd {
	return tea.Batch(loadJobsCmd(m.ctx, m.catalog), m.spinner.Tick)
}

func loadJobsCmd(ctx context.Context, cat *catalog.Catalog) tea.Cmd {
	return func() tea.Msg {
		jobs, err := cat.Load(ctx)
		return jobsLoadedMsg{count: len(jobs), report: cat.LastReport(), err: err}
	}
}

func debounceCmd(d time.Duration, seq int) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return searchDebounceMsg{seq: seq} }
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return searchDebounceMsg{seq: seq} })
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.search.Width = clampInt(msg.Width-20, 10, 80)
		if m.form != nil {
			m.form = resizeApplyForm(m.form, m.width)
		}
		if m.mode == browseModeDetail {
			m.syncDetailViewport()
		}
		return m, nil
	case jobsLoadedMsg:
		m.loading = false
		m.loadErr = msg.err
		switch {
		case msg.err != nil:
			m.setStatus(statusError, "error: "+msg.err.Error())
		case msg.report.Shape == catalog.ShapeUnknown:
			m.setStatus(statusError, "warning: unexpected response format, no jobs loaded")
		default:
			m.setStatus(statusInfo, fmt.Sprintf("loaded %d jobs", msg.count))
		}
		m.refreshVisible()
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case searchDebounceMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		m.applySearch(m.search.Value())
		return m, nil
	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.statusMessage = ""
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.mode == browseModeDetail {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	if keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case browseModeWelcome:
		if key.Matches(keyMsg, m.keys.Theme) {
			m.toggleTheme()
			return m, nil
		}
		m.mode = browseModeList
		return m, nil
	case browseModeList:
		return m.updateList(keyMsg)
	case browseModeDetail:
		return m.updateDetail(keyMsg)
	case browseModeApply:
		return m.updateApply(keyMsg)
	case browseModeSort:
		return m.updateSort(keyMsg)
	default:
		return m, nil
	}
}

func (m browseModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.updateSearchInput(msg)
	}

	st := &m.lists[m.tab]
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if st.cursor > 0 {
			st.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if st.cursor < len(m.visible)-1 {
			st.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Open):
		job, ok := m.selectedJob()
		if !ok {
			return m, nil
		}
		m.openDetail(job)
		return m, nil
	case key.Matches(msg, m.keys.Save):
		job, ok := m.selectedJob()
		if !ok {
			return m, nil
		}
		cmd := m.toggleSaved(job)
		m.refreshVisible()
		return m, cmd
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Clear):
		m.setSearchText("")
		return m, nil
	case key.Matches(msg, m.keys.Sort):
		m.openSortPicker()
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		m.switchTab()
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, m.startRefresh()
	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if st.search != "" {
			m.setSearchText("")
		}
		return m, nil
	}

	if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(popularCategories) && m.tab == browseTabJobs {
		category := popularCategories[n-1]
		if strings.EqualFold(st.search, category) {
			m.setSearchText("")
		} else {
			m.setSearchText(category)
		}
	}
	return m, nil
}

func (m browseModel) updateSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", "down", "tab":
		m.searching = false
		m.search.Blur()
		m.searchSeq++
		m.applySearch(m.search.Value())
		return m, nil
	}
	prev := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == prev {
		return m, cmd
	}
	m.searchSeq++
	return m, tea.Batch(cmd, debounceCmd(m.debounce, m.searchSeq))
}

func (m browseModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = browseModeList
		m.refreshVisible()
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Apply), msg.String() == "enter":
		m.form = newApplyForm(m.detail, m.width)
		m.mode = browseModeApply
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Save):
		cmd := m.toggleSaved(m.detail)
		m.syncDetailViewport()
		return m, cmd
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyApplicationLink()
	case key.Matches(msg, m.keys.Browser):
		return m, m.openApplicationLink()
	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m browseModel) updateApply(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		m.mode = browseModeDetail
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.form = nil
		m.mode = browseModeDetail
		m.setStatus(statusInfo, "application cancelled")
		m.syncDetailViewport()
		return m, nil
	case "ctrl+t":
		m.toggleTheme()
		return m, nil
	case "up", "shift+tab":
		m.form.move(-1)
		return m, nil
	case "down", "tab":
		m.form.move(1)
		return m, nil
	case "enter", "ctrl+s":
		if !m.form.onLastField() && msg.String() == "enter" {
			m.form.move(1)
			return m, nil
		}
		ack, err := m.form.submit()
		if err != nil {
			return m, nil
		}
		m.form = nil
		m.mode = browseModeList
		m.refreshVisible()
		return m, m.toast(statusOK, ack)
	}

	var cmd tea.Cmd
	m.form.Input, cmd = m.form.Input.Update(msg)
	m.form.commitInput()
	return m, cmd
}

func (m browseModel) updateSort(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	options := m.sortOptions()
	switch msg.String() {
	case "esc", "q":
		m.mode = browseModeList
		return m, nil
	case "t":
		m.toggleTheme()
		return m, nil
	case "up", "k":
		if m.sortCursor > 0 {
			m.sortCursor--
		}
		return m, nil
	case "down", "j":
		if m.sortCursor < len(options)-1 {
			m.sortCursor++
		}
		return m, nil
	case "enter", " ":
		st := &m.lists[m.tab]
		st.sortKey = options[clampInt(m.sortCursor, 0, len(options)-1)]
		st.cursor = 0
		m.mode = browseModeList
		m.refreshVisible()
		m.setStatus(statusInfo, "sort: "+st.sortKey.Label())
		return m, nil
	}
	return m, nil
}

func (m *browseModel) sortOptions() []model.SortKey {
	if m.tab == browseTabSaved {
		return savedSortOptions
	}
	return jobsSortOptions
}

func (m *browseModel) openSortPicker() {
	m.mode = browseModeSort
	m.sortCursor = 0
	current := m.lists[m.tab].sortKey
	for i, k := range m.sortOptions() {
		if k == current {
			m.sortCursor = i
			break
		}
	}
}

func (m *browseModel) selectedJob() (model.Job, bool) {
	if len(m.visible) == 0 {
		return model.Job{}, false
	}
	idx := clampInt(m.lists[m.tab].cursor, 0, len(m.visible)-1)
	return m.visible[idx], true
}

// refreshVisible recomputes the rows of the active tab from the catalog or
// the saved set.
func (m *browseModel) refreshVisible() {
	st := &m.lists[m.tab]
	if m.tab == browseTabSaved {
		m.visible = m.saved.Query(st.search, st.sortKey)
	} else {
		m.visible = m.catalog.Query(st.search, st.sortKey)
	}
	if len(m.visible) == 0 {
		st.cursor = 0
		return
	}
	st.cursor = clampInt(st.cursor, 0, len(m.visible)-1)
}

func (m *browseModel) applySearch(text string) {
	st := &m.lists[m.tab]
	if st.search == text {
		return
	}
	st.search = text
	st.cursor = 0
	m.refreshVisible()
}

func (m *browseModel) setSearchText(text string) {
	m.search.SetValue(text)
	m.search.CursorEnd()
	m.searchSeq++
	m.applySearch(text)
}

func (m *browseModel) switchTab() {
	if m.searching {
		m.searching = false
		m.search.Blur()
		m.applySearch(m.search.Value())
	}
	m.searchSeq++
	if m.tab == browseTabJobs {
		m.tab = browseTabSaved
	} else {
		m.tab = browseTabJobs
	}
	m.search.SetValue(m.lists[m.tab].search)
	m.refreshVisible()
}

func (m *browseModel) startRefresh() tea.Cmd {
	if m.loading {
		m.setStatus(statusInfo, "already loading, refresh ignored")
		return nil
	}
	m.loading = true
	m.setStatus(statusInfo, "refreshing jobs...")
	return tea.Batch(loadJobsCmd(m.ctx, m.catalog), m.spinner.Tick)
}

func (m *browseModel) toggleSaved(job model.Job) tea.Cmd {
	state, err := m.saved.Toggle(job)
	if err != nil {
		m.setStatus(statusError, "error: "+err.Error())
		return nil
	}
	if state == model.SavedStateSaved {
		return m.toast(statusOK, "Job saved")
	}
	return m.toast(statusOK, "Job removed")
}

func (m *browseModel) toggleTheme() {
	m.styles = theme.New(m.styles.Mode.Toggle())
	m.spinner.Style = m.styles.Title
	if m.mode == browseModeDetail {
		m.syncDetailViewport()
	}
}

func (m *browseModel) openDetail(job model.Job) {
	m.detail = job
	m.mode = browseModeDetail
	m.viewport = viewport.New(m.detailWidth(), m.detailHeight())
	m.syncDetailViewport()
	m.viewport.GotoTop()
}

func (m *browseModel) detailWidth() int {
	return maxInt(m.width-4, 20)
}

func (m *browseModel) detailHeight() int {
	return clampInt(m.height-6, 5, 500)
}

func (m *browseModel) syncDetailViewport() {
	m.viewport.Width = m.detailWidth()
	m.viewport.Height = m.detailHeight()
	m.viewport.SetContent(m.renderDetailBody(m.viewport.Width))
}

func (m *browseModel) copyApplicationLink() tea.Cmd {
	link := strings.TrimSpace(m.detail.ApplicationLink)
	if link == "" {
		m.setStatus(statusError, "error: this job has no application link")
		return nil
	}
	if err := m.writeClipboard(link); err != nil {
		m.setStatus(statusError, "error: copy link: "+err.Error())
		return nil
	}
	return m.toast(statusOK, "Application link copied")
}

func (m *browseModel) openApplicationLink() tea.Cmd {
	link := strings.TrimSpace(m.detail.ApplicationLink)
	if link == "" {
		m.setStatus(statusError, "error: this job has no application link")
		return nil
	}
	if err := m.openURL(link); err != nil {
		m.setStatus(statusError, "error: open link: "+err.Error())
		return nil
	}
	return m.toast(statusOK, "Opened application link")
}

// setStatus replaces the status line and cancels any pending toast expiry.
func (m *browseModel) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.statusMessage = text
	m.toastSeq++
}

// toast shows text briefly; a newer status message wins over the expiry.
func (m *browseModel) toast(kind statusKind, text string) tea.Cmd {
	m.setStatus(kind, text)
	seq := m.toastSeq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })
}
