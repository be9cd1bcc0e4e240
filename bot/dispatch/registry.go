package dispatch

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry maps command names and aliases to commands
type Registry struct {
	mu       sync.RWMutex
	byName   map[string]*Command
	commands []*Command
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Command),
	}
}

// Register adds commands, rejecting any name or alias already taken
func (r *Registry) Register(cmds ...*Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, cmd := range cmds {
		if cmd.Name == "" || cmd.Handler == nil {
			return fmt.Errorf("command %q must have a name and a handler", cmd.Name)
		}
		names := cmd.Names()
		for _, name := range names {
			key := strings.ToLower(name)
			if _, exists := r.byName[key]; exists {
				return fmt.Errorf("command name %q is already registered", key)
			}
		}
		for _, name := range names {
			r.byName[strings.ToLower(name)] = cmd
		}
		r.commands = append(r.commands, cmd)
	}
	return nil
}

// Resolve parses a message. The two leading tokens joined by a space are tried
// before the first token alone so multi-word commands win.
func (r *Registry) Resolve(content, prefix string) (*Command, []string, bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return nil, nil, false
	}

	tokens := strings.Fields(strings.TrimPrefix(content, prefix))
	if len(tokens) == 0 {
		return nil, nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(tokens) >= 2 {
		joined := strings.ToLower(tokens[0] + " " + tokens[1])
		if cmd, ok := r.byName[joined]; ok {
			return cmd, tokens[2:], true
		}
	}
	if cmd, ok := r.byName[strings.ToLower(tokens[0])]; ok {
		return cmd, tokens[1:], true
	}
	return nil, nil, false
}

// Lookup finds a command by name or alias
func (r *Registry) Lookup(name string) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmd, ok := r.byName[strings.ToLower(name)]
	return cmd, ok
}

// Commands returns every registered command sorted by category then name
func (r *Registry) Commands() []*Command {
	r.mu.RLock()
	out := make([]*Command, len(r.commands))
	copy(out, r.commands)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out
}
