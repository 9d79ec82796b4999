package explainer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nathoo/nordicgrid/types"
)

func TestExplain_OnlyOnce(t *testing.T) {
	var x Explainer

	assert.True(t, x.Explain(types.CardMove))
	c, ok := x.Current()
	assert.True(t, ok)
	assert.Equal(t, types.CardMove, c)

	x.Dismiss()
	assert.False(t, x.Explain(types.CardMove))
	_, ok = x.Current()
	assert.False(t, ok)
}

func TestExplain_SwitchesCurrent(t *testing.T) {
	var x Explainer
	x.Explain(types.CardMove)
	x.Explain(types.CardKey)

	c, ok := x.Current()
	assert.True(t, ok)
	assert.Equal(t, types.CardKey, c)
	assert.True(t, x.Explained(types.CardMove))
	assert.False(t, x.Explained(types.CardArmor))
}

func TestMarkExplained(t *testing.T) {
	var x Explainer
	x.MarkExplained(types.CardHealth)

	assert.False(t, x.Explain(types.CardHealth))
	_, ok := x.Current()
	assert.False(t, ok)
}

func TestTextForEveryCard(t *testing.T) {
	for _, c := range types.AllCardTypes {
		assert.NotEmpty(t, Title(c), "title for %s", c)
		assert.NotEmpty(t, Text(c), "text for %s", c)
	}
}
