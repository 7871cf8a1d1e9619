package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap is the normal-mode binding table. Each action has exactly one
// binding so the help overlay and the dispatcher never disagree.
type KeyMap struct {
	// Tabs
	NewTab       key.Binding
	CloseTab     key.Binding
	NextTab      key.Binding
	PrevTab      key.Binding
	GoToTab      key.Binding
	Duplicate    key.Binding
	Pin          key.Binding
	Reopen       key.Binding
	CloseOthers  key.Binding
	CloseToRight key.Binding
	FindTab      key.Binding

	// Groups
	Merge          key.Binding
	Ungroup        key.Binding
	CloseGroup     key.Binding
	Undo           key.Binding
	RenameGroup    key.Binding
	CollapseGroup  key.Binding
	MovePanelLeft  key.Binding
	MovePanelRight key.Binding
	Narrow         key.Binding
	Widen          key.Binding
	EqualSplit     key.Binding

	// Pages
	Address    key.Binding
	Reload     key.Binding
	Back       key.Binding
	Forward    key.Binding
	ClearCache key.Binding
	CopyURL    key.Binding

	// Library
	Bookmark      key.Binding
	BookmarkAll   key.Binding
	Bookmarks     key.Binding
	History       key.Binding
	SaveSession   key.Binding
	OpenSession   key.Binding
	ToggleSidebar key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default bindings. Terminals cannot tell
// ctrl+digit from a digit, so tab jumps use alt.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NewTab:       key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "new tab")),
		CloseTab:     key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "close tab")),
		NextTab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("S-tab", "previous tab")),
		GoToTab:      key.NewBinding(key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4", "alt+5", "alt+6", "alt+7", "alt+8", "alt+9"), key.WithHelp("alt+1..9", "go to tab")),
		Duplicate:    key.NewBinding(key.WithKeys("alt+d"), key.WithHelp("alt+d", "duplicate")),
		Pin:          key.NewBinding(key.WithKeys("alt+p"), key.WithHelp("alt+p", "pin")),
		Reopen:       key.NewBinding(key.WithKeys("alt+t"), key.WithHelp("alt+t", "reopen closed")),
		CloseOthers:  key.NewBinding(key.WithKeys("alt+w"), key.WithHelp("alt+w", "close others")),
		CloseToRight: key.NewBinding(key.WithKeys("alt+k"), key.WithHelp("alt+k", "close to right")),
		FindTab:      key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "find tab")),

		Merge:          key.NewBinding(key.WithKeys("alt+m"), key.WithHelp("alt+m", "merge with left tab")),
		Ungroup:        key.NewBinding(key.WithKeys("alt+u"), key.WithHelp("alt+u", "ungroup")),
		CloseGroup:     key.NewBinding(key.WithKeys("alt+g"), key.WithHelp("alt+g", "close group")),
		Undo:           key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo close group")),
		RenameGroup:    key.NewBinding(key.WithKeys("alt+r"), key.WithHelp("alt+r", "rename group")),
		CollapseGroup:  key.NewBinding(key.WithKeys("alt+c"), key.WithHelp("alt+c", "collapse group")),
		MovePanelLeft:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "move panel left")),
		MovePanelRight: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "move panel right")),
		Narrow:         key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "narrow panel")),
		Widen:          key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "widen panel")),
		EqualSplit:     key.NewBinding(key.WithKeys("alt+="), key.WithHelp("alt+=", "equal split")),

		Address:    key.NewBinding(key.WithKeys("/", "ctrl+l"), key.WithHelp("/", "address bar")),
		Reload:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
		Back:       key.NewBinding(key.WithKeys("alt+left"), key.WithHelp("alt+←", "back")),
		Forward:    key.NewBinding(key.WithKeys("alt+right"), key.WithHelp("alt+→", "forward")),
		ClearCache: key.NewBinding(key.WithKeys("alt+x"), key.WithHelp("alt+x", "clear cache")),
		CopyURL:    key.NewBinding(key.WithKeys("alt+y"), key.WithHelp("alt+y", "copy address")),

		Bookmark:      key.NewBinding(key.WithKeys("alt+b"), key.WithHelp("alt+b", "bookmark tab")),
		BookmarkAll:   key.NewBinding(key.WithKeys("alt+B"), key.WithHelp("alt+B", "bookmark all")),
		Bookmarks:     key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "bookmarks")),
		History:       key.NewBinding(key.WithKeys("ctrl+h"), key.WithHelp("ctrl+h", "history")),
		SaveSession:   key.NewBinding(key.WithKeys("alt+s"), key.WithHelp("alt+s", "save session")),
		OpenSession:   key.NewBinding(key.WithKeys("alt+o"), key.WithHelp("alt+o", "open session")),
		ToggleSidebar: key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "toggle sidebar")),

		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("ctrl+q", "q"), key.WithHelp("ctrl+q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NewTab, k.Address, k.Merge, k.FindTab, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap; one column per area
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NewTab, k.CloseTab, k.NextTab, k.PrevTab, k.GoToTab, k.Duplicate, k.Pin, k.Reopen, k.CloseOthers, k.CloseToRight, k.FindTab},
		{k.Merge, k.Ungroup, k.CloseGroup, k.Undo, k.RenameGroup, k.CollapseGroup, k.MovePanelLeft, k.MovePanelRight, k.Narrow, k.Widen, k.EqualSplit},
		{k.Address, k.Reload, k.Back, k.Forward, k.ClearCache, k.CopyURL},
		{k.Bookmark, k.BookmarkAll, k.Bookmarks, k.History, k.SaveSession, k.OpenSession, k.ToggleSidebar, k.Help, k.Quit},
	}
}
