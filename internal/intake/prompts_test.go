package intake

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadPromptSetMissingFileUsesDefaults(t *testing.T) {
	p, err := LoadPromptSet(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultPromptSet().Questions[FieldLastName], p.question(FieldLastName))
	require.NotEmpty(t, p.Triggers)
}

func TestLoadPromptSetOverridesByKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intake.yaml")
	content := `
triggers: ["nuevo cliente"]
questions:
  last_name:
    display: "Apellido?"
    spoken: "Apellido, por favor?"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	p, err := LoadPromptSet(path)
	require.NoError(t, err)
	require.Equal(t, "Apellido?", p.question(FieldLastName).Display)
	require.True(t, p.matchesTrigger("nuevo cliente por favor"))
	require.False(t, p.matchesTrigger("new client"))
	// Untouched keys keep defaults
	require.Equal(t, DefaultPromptSet().Questions[FieldEmail], p.question(FieldEmail))
	require.Equal(t, DefaultPromptSet().Messages[msgCancelled], p.message(msgCancelled))
}

func TestLoadPromptSetRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intake.yaml")
	require.NoError(t, os.WriteFile(path, []byte("questions: [not a map"), 0o644))
	_, err := LoadPromptSet(path)
	require.Error(t, err)
}

func TestGuideUsesOverriddenPrompts(t *testing.T) {
	p := DefaultPromptSet()
	p.Questions[FieldFirstName] = Line{Display: "Given name?", Spoken: "And the given name?"}

	sessions := newMockSessions()
	g, err := NewGuide(sessions, &mockClients{}, &mockAuth{ok: true}, p, false)
	require.NoError(t, err)

	ctx := context.Background()
	g.HandleUtterance(ctx, "s", "Smith")
	res := g.HandleUtterance(ctx, "s", "yes")
	require.Contains(t, res.Display, "Given name?")
	require.Contains(t, res.Spoken, "And the given name?")
}
