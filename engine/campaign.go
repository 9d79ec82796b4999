package engine

import (
	"fmt"

	"github.com/nathoo/nordicgrid/engine/save"
	"github.com/nathoo/nordicgrid/types"
)

// Campaign plays an ordered list of levels, one engine at a time.
type Campaign struct {
	Levels []*types.LevelDef

	opts    []Option
	index   int
	current *Engine
}

// NewCampaign starts the first level. Panics if levels is empty.
func NewCampaign(levels []*types.LevelDef, opts ...Option) *Campaign {
	if len(levels) == 0 {
		panic("engine: campaign needs at least one level")
	}
	c := &Campaign{Levels: levels, opts: opts}
	c.current = New(levels[0], opts...)
	return c
}

// Current returns the engine of the level being played.
func (c *Campaign) Current() *Engine {
	return c.current
}

// Index returns the position of the current level.
func (c *Campaign) Index() int {
	return c.index
}

// HasNext reports whether a level follows the current one.
func (c *Campaign) HasNext() bool {
	return c.index+1 < len(c.Levels)
}

// Advance starts the next level once the current one is complete.
// Returns false if the level is not complete or there is no next level.
func (c *Campaign) Advance() bool {
	if !c.current.Complete() || !c.HasNext() {
		return false
	}
	c.index++
	c.current = New(c.Levels[c.index], c.opts...)
	return true
}

// Save serializes the current session.
func (c *Campaign) Save() ([]byte, error) {
	return save.Save(c.current.State, c.index)
}

// Restore rebuilds the saved level and applies the save onto it. The save
// must name the same level the campaign has at that position.
func (c *Campaign) Restore(sd *save.SaveData) error {
	if sd.LevelIndex < 0 || sd.LevelIndex >= len(c.Levels) {
		return fmt.Errorf("save refers to level %d, campaign has %d", sd.LevelIndex, len(c.Levels))
	}
	if name := c.Levels[sd.LevelIndex].Name; sd.Level != name {
		return fmt.Errorf("save is for level %q, level %d of this campaign is %q", sd.Level, sd.LevelIndex, name)
	}
	eng := New(c.Levels[sd.LevelIndex], c.opts...)
	if err := save.ApplySave(eng.State, sd); err != nil {
		return err
	}
	eng.Reset()
	c.index = sd.LevelIndex
	c.current = eng
	return nil
}
