package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/jask/widgetboard/internal/config"
)

type Action string

type Binding struct {
	Action Action
	Keys   []string
	Help   string
	Scopes []string
}

// KeyRegistry maps keys to actions per scope. Lookups fall back to the
// global scope.
type KeyRegistry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
}

const (
	scopeGlobal    = "global"
	scopeDashboard = "dashboard"
	scopeSearch    = "search"
	scopePanelList = "panel_list"
	scopePanelForm = "panel_form"
)

const (
	actionQuit        Action = "quit"
	actionNavigate    Action = "navigate"
	actionSearch      Action = "search"
	actionClearSearch Action = "clear_search"
	actionConfirm     Action = "confirm"
	actionAdd         Action = "add"
	actionOpenPanel   Action = "open_panel"
	actionColumn      Action = "column"
	actionToggle      Action = "toggle"
	actionDelete      Action = "delete"
	actionClose       Action = "close"
	actionCancel      Action = "cancel"
	actionNext        Action = "next"
	actionFocusNext   Action = "focus_next"
	actionFocusPrev   Action = "focus_prev"
	actionSave        Action = "save"
)

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}

	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(Binding{Action: action, Keys: keys, Help: help, Scopes: []string{scope}})
	}

	// Global fallback lookup. Printable keys stay out of here so text
	// inputs never lose characters to it.
	reg(scopeGlobal, actionQuit, []string{"ctrl+c"}, "quit")

	reg(scopeDashboard, actionSearch, []string{"/"}, "search")
	reg(scopeDashboard, actionNavigate, []string{"j/k", "j", "k", "up", "down"}, "section")
	reg(scopeDashboard, actionAdd, []string{"a"}, "add widget")
	reg(scopeDashboard, actionOpenPanel, []string{"A"}, "widgets")
	reg(scopeDashboard, actionClearSearch, []string{"esc"}, "clear search")
	reg(scopeDashboard, actionQuit, []string{"q", "ctrl+c"}, "quit")

	reg(scopeSearch, actionConfirm, []string{"enter"}, "done")
	reg(scopeSearch, actionClearSearch, []string{"esc"}, "clear")

	reg(scopePanelList, actionNavigate, []string{"j/k", "j", "k", "up", "down"}, "navigate")
	reg(scopePanelList, actionColumn, []string{"h/l", "h", "left", "l", "right"}, "category")
	reg(scopePanelList, actionToggle, []string{"space"}, "show/hide")
	reg(scopePanelList, actionDelete, []string{"d"}, "delete")
	reg(scopePanelList, actionFocusNext, []string{"tab"}, "new widget")
	reg(scopePanelList, actionClose, []string{"esc"}, "close")

	reg(scopePanelForm, actionSave, []string{"ctrl+s"}, "confirm")
	reg(scopePanelForm, actionNext, []string{"enter"}, "next field")
	reg(scopePanelForm, actionFocusNext, []string{"tab"}, "focus")
	reg(scopePanelForm, actionFocusPrev, []string{"shift+tab"}, "back")
	reg(scopePanelForm, actionCancel, []string{"esc"}, "cancel")

	return r
}

func (r *KeyRegistry) Register(b Binding) {
	if r == nil {
		return
	}
	for _, scope := range b.Scopes {
		scope = strings.TrimSpace(scope)
		if scope == "" || len(b.Keys) == 0 {
			continue
		}
		if _, ok := r.indexByScope[scope]; !ok {
			r.indexByScope[scope] = make(map[string]*Binding)
		}
		normKeys := normalizeKeyList(b.Keys)
		if len(normKeys) == 0 {
			continue
		}
		if r.scopeHasAnyKey(scope, normKeys) {
			continue
		}

		copyBinding := b
		copyBinding.Keys = normKeys
		copyBinding.Scopes = []string{scope}
		r.bindingsByScope[scope] = append(r.bindingsByScope[scope], &copyBinding)
		for _, k := range copyBinding.Keys {
			r.indexByScope[scope][k] = &copyBinding
		}
	}
}

func (r *KeyRegistry) BindingsForScope(scope string) []Binding {
	if r == nil {
		return nil
	}
	items := r.bindingsByScope[scope]
	out := make([]Binding, 0, len(items))
	for _, b := range items {
		out = append(out, *b)
	}
	return out
}

func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	keyName = normalizeKeyName(keyName)
	if b := r.lookupInScope(keyName, scope); b != nil {
		return b
	}
	if scope != scopeGlobal {
		return r.lookupInScope(keyName, scopeGlobal)
	}
	return nil
}

func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	items := r.BindingsForScope(scope)
	out := make([]key.Binding, 0, len(items))
	for _, b := range items {
		if len(b.Keys) == 0 {
			continue
		}
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Help)))
	}
	return out
}

func (r *KeyRegistry) lookupInScope(keyName, scope string) *Binding {
	if scope == "" {
		return nil
	}
	lookup, ok := r.indexByScope[scope]
	if !ok {
		return nil
	}
	return lookup[keyName]
}

func (r *KeyRegistry) scopeHasAnyKey(scope string, keys []string) bool {
	lookup := r.indexByScope[scope]
	for _, k := range keys {
		if _, exists := lookup[k]; exists {
			return true
		}
	}
	return false
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := normalizeKeyName(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) == 1 {
		ch := trimmed[0]
		if ch >= 'A' && ch <= 'Z' {
			// Preserve single uppercase rune so uppercase/lowercase bindings
			// can be distinct actions within the same scope.
			return trimmed
		}
	}
	s := strings.ToLower(trimmed)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "control+", "ctrl+")
	s = strings.ReplaceAll(s, "ctl+", "ctrl+")
	s = strings.ReplaceAll(s, "return", "enter")
	s = strings.ReplaceAll(s, "spacebar", "space")
	return s
}

// ApplyKeybindingConfig replaces the keys of existing bindings. Unknown
// scopes or actions, repeated entries and key conflicts within a scope are
// rejected.
func (r *KeyRegistry) ApplyKeybindingConfig(items []config.KeybindingConfig) error {
	if r == nil || len(items) == 0 {
		return nil
	}
	type pair struct {
		scope  string
		action Action
	}
	staged := make(map[pair][]string)
	for _, o := range items {
		scope := strings.TrimSpace(o.Scope)
		if scope == "" {
			return fmt.Errorf("keybinding override: scope is required")
		}
		action := Action(strings.TrimSpace(o.Action))
		if action == "" {
			return fmt.Errorf("keybinding override scope=%q: action is required", scope)
		}
		keys := normalizeKeyList(o.Keys)
		if len(keys) == 0 {
			return fmt.Errorf("keybinding override scope=%q action=%q: keys are required", scope, action)
		}
		if len(r.bindingsByScope[scope]) == 0 {
			return fmt.Errorf("keybinding override scope=%q action=%q: unknown scope", scope, action)
		}
		if r.findBinding(scope, action) == nil {
			return fmt.Errorf("keybinding override scope=%q action=%q: unknown action in scope", scope, action)
		}
		p := pair{scope: scope, action: action}
		if _, dup := staged[p]; dup {
			return fmt.Errorf("keybinding override scope=%q action=%q: duplicated override entry", scope, action)
		}
		staged[p] = keys
	}

	// Nothing is applied unless every scope is conflict free.
	scopes := make([]string, 0, len(r.bindingsByScope))
	for scope := range r.bindingsByScope {
		scopes = append(scopes, scope)
	}
	sort.Strings(scopes)
	for _, scope := range scopes {
		seen := make(map[string]Action)
		for _, b := range r.bindingsByScope[scope] {
			keys := b.Keys
			if k, ok := staged[pair{scope: scope, action: b.Action}]; ok {
				keys = k
			}
			for _, k := range keys {
				if prev, ok := seen[k]; ok {
					return fmt.Errorf("keybinding override conflict in scope=%q: key %q used by both %q and %q", scope, k, prev, b.Action)
				}
				seen[k] = b.Action
			}
		}
	}

	for p, keys := range staged {
		r.findBinding(p.scope, p.action).Keys = keys
	}
	r.rebuildIndex()
	return nil
}

func (r *KeyRegistry) findBinding(scope string, action Action) *Binding {
	for _, b := range r.bindingsByScope[scope] {
		if b.Action == action {
			return b
		}
	}
	return nil
}

func (r *KeyRegistry) rebuildIndex() {
	r.indexByScope = make(map[string]map[string]*Binding, len(r.bindingsByScope))
	for scope, bindings := range r.bindingsByScope {
		r.indexByScope[scope] = make(map[string]*Binding)
		for _, b := range bindings {
			for _, k := range b.Keys {
				r.indexByScope[scope][k] = b
			}
		}
	}
}
