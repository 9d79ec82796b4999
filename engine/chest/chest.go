// Package chest opens chests with keys. It is the default collaborator
// notified when a Key card is played.
package chest

import (
	"github.com/nathoo/nordicgrid/engine/state"
	"github.com/nathoo/nordicgrid/types"
)

// Opener opens every chest at or touching the position a key is used at.
// Opened chests become empty tiles. Results are reported through emit.
type Opener struct {
	session *state.Session
	emit    func(types.Event)
}

// NewOpener creates an opener for the session. emit receives one
// "chest_opened" event per chest, or a single "key_unused" event.
func NewOpener(s *state.Session, emit func(types.Event)) *Opener {
	return &Opener{session: s, emit: emit}
}

// UseKey opens the chests at and around at.
func (o *Opener) UseKey(at types.Coord) {
	opened := 0
	for _, c := range state.KeyReach(o.session, at) {
		if o.session.Grid.Get(c) != types.TileChest {
			continue
		}
		o.session.Grid.Set(c, types.TileEmpty)
		opened++
		o.emit(types.Event{
			Type: "chest_opened",
			Data: map[string]any{"at": c},
		})
	}
	if opened == 0 {
		o.emit(types.Event{
			Type: "key_unused",
			Data: map[string]any{"at": at},
		})
	}
}
