package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(*Context) error { return nil }

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	t.Run("rejects duplicate alias", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry()
		require.NoError(t, r.Register(&Command{Name: "balance", Aliases: []string{"bal"}, Handler: noop}))

		err := r.Register(&Command{Name: "bank", Aliases: []string{"BAL"}, Handler: noop})
		assert.Error(t, err)

		_, ok := r.Lookup("bank")
		assert.False(t, ok, "a rejected command must not be partially registered")
	})

	t.Run("rejects missing handler", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry()
		assert.Error(t, r.Register(&Command{Name: "x"}))
	})
}

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	profile := &Command{Name: "profile", Handler: noop}
	setbio := &Command{Name: "profile setbio", Handler: noop}
	balance := &Command{Name: "balance", Aliases: []string{"bal", "coins"}, Handler: noop}
	require.NoError(t, r.Register(profile, setbio, balance))

	tests := []struct {
		name     string
		content  string
		prefix   string
		wantCmd  *Command
		wantArgs []string
		wantOK   bool
	}{
		{"single token", "!balance", "!", balance, []string{}, true},
		{"alias case insensitive", "!BAL <@1>", "!", balance, []string{"<@1>"}, true},
		{"two word command first", "!profile setbio hello there", "!", setbio, []string{"hello", "there"}, true},
		{"falls back to one token", "!profile <@5>", "!", profile, []string{"<@5>"}, true},
		{"extra whitespace", "!  balance   ", "!", balance, []string{}, true},
		{"multi char prefix", "$$bal", "$$", balance, []string{}, true},
		{"wrong prefix", "?balance", "!", nil, nil, false},
		{"prefix only", "!", "!", nil, nil, false},
		{"unknown", "!dance", "!", nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args, ok := r.Resolve(tt.content, tt.prefix)
			assert.Equal(t, tt.wantOK, ok)
			assert.Same(t, tt.wantCmd, cmd)
			if tt.wantOK {
				assert.Equal(t, tt.wantArgs, args)
			}
		})
	}
}

func TestRegistry_CommandsSorted(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.Register(
		&Command{Name: "slots", Category: CategoryGambling, Handler: noop},
		&Command{Name: "daily", Category: CategoryEconomy, Handler: noop},
		&Command{Name: "balance", Category: CategoryEconomy, Handler: noop},
	))

	cmds := r.Commands()
	require.Len(t, cmds, 3)
	assert.Equal(t, "balance", cmds[0].Name)
	assert.Equal(t, "daily", cmds[1].Name)
	assert.Equal(t, "slots", cmds[2].Name)
}
