package assign

import "github.com/katalvlaran/lvmatch/core"

// Index is an ordered list of agent ids with its inverse position table.
type Index struct {
	ids []core.AgentID
	pos map[core.AgentID]int
}

// NewIndex indexes ids in the given order. Duplicates keep their first
// position.
func NewIndex(ids []core.AgentID) Index {
	ix := Index{
		ids: make([]core.AgentID, len(ids)),
		pos: make(map[core.AgentID]int, len(ids)),
	}
	copy(ix.ids, ids)
	for i, id := range ids {
		if _, ok := ix.pos[id]; !ok {
			ix.pos[id] = i
		}
	}

	return ix
}

// Len returns the number of indexed ids.
func (ix Index) Len() int { return len(ix.ids) }

// ID returns the id at position i.
func (ix Index) ID(i int) core.AgentID { return ix.ids[i] }

// Pos returns the position of id.
func (ix Index) Pos(id core.AgentID) (int, bool) {
	i, ok := ix.pos[id]

	return i, ok
}

