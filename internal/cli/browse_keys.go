package cli

import "github.com/charmbracelet/bubbles/key"

type browseKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Save    key.Binding
	Search  key.Binding
	Clear   key.Binding
	Sort    key.Binding
	Tab     key.Binding
	Refresh key.Binding
	Theme   key.Binding
	Apply   key.Binding
	Copy    key.Binding
	Browser key.Binding
	Back    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newBrowseKeyMap() browseKeyMap {
	return browseKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Save:    key.NewBinding(key.WithKeys("s", " "), key.WithHelp("s", "save/unsave")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Clear:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear search")),
		Sort:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sort by")),
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "jobs/saved")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Theme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "dark mode")),
		Apply:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "apply now")),
		Copy:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy link")),
		Browser: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "open link")),
		Back:    key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// listKeys and detailKeys implement help.KeyMap for the two browsing views.
type listKeys struct{ k browseKeyMap }

func (l listKeys) ShortHelp() []key.Binding {
	return []key.Binding{l.k.Open, l.k.Save, l.k.Search, l.k.Sort, l.k.Tab, l.k.Help, l.k.Quit}
}

func (l listKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{l.k.Up, l.k.Down, l.k.Open, l.k.Save},
		{l.k.Search, l.k.Clear, l.k.Sort, l.k.Tab},
		{l.k.Refresh, l.k.Theme, l.k.Help, l.k.Quit},
	}
}

type detailKeys struct{ k browseKeyMap }

func (d detailKeys) ShortHelp() []key.Binding {
	return []key.Binding{d.k.Apply, d.k.Save, d.k.Copy, d.k.Browser, d.k.Theme, d.k.Back}
}

func (d detailKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{d.k.Up, d.k.Down, d.k.Apply, d.k.Save},
		{d.k.Copy, d.k.Browser, d.k.Theme, d.k.Back},
	}
}
