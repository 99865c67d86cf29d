package preset

import (
	"testing"

	"github.com/leapstack-labs/lintpreset/pkg/core"
	"github.com/leapstack-labs/lintpreset/pkg/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoc(name string, extends ...string) *document.Document {
	return &document.Document{
		Name:    name,
		Extends: extends,
		Rules:   core.RuleMap{name + "-rule": core.Setting(core.SeverityError)},
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newDoc("b"), "test"))
	require.NoError(t, r.Register(newDoc("a", "b"), "test"))

	assert.Equal(t, []string{"a", "b"}, r.Names())
	assert.Equal(t, 2, r.Len())

	doc, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, []string{"b"}, doc.Extends)

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_RegisterErrors(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newDoc("base"), "first.yaml"))

	err := r.Register(newDoc("base"), "second.yaml")
	require.ErrorIs(t, err, ErrDuplicatePreset)
	assert.Contains(t, err.Error(), "first.yaml")
	assert.Contains(t, err.Error(), "second.yaml")

	assert.Error(t, r.Register(&document.Document{}, "unnamed.yaml"))
	assert.Error(t, r.Register(nil, "nil"))
}

func TestRegistry_List(t *testing.T) {
	r := NewRegistry()
	doc := newDoc("team", "base")
	doc.Description = "team rules"
	doc.Overrides = []document.Override{{
		Files: []string{"*.ts"},
		Rules: core.RuleMap{"x": core.Setting(core.SeverityWarn), "y": core.Setting(core.SeverityOff)},
	}}
	require.NoError(t, r.Register(doc, "team.yaml"))
	require.NoError(t, r.Register(newDoc("alpha"), "alpha.yaml"))

	infos := r.List()
	require.Len(t, infos, 2)
	assert.Equal(t, "alpha", infos[0].Name)
	assert.Equal(t, Info{
		Name:        "team",
		Description: "team rules",
		Source:      "team.yaml",
		Extends:     []string{"base"},
		Rules:       3,
		Overrides:   1,
	}, infos[1])
}
