package completion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmatch/completion"
	"github.com/katalvlaran/lvmatch/core"
)

var receiversABCD = []core.AgentID{"W", "X", "Y", "Z"}

// TestList_PreservesPrefix verifies the supplied ranks are untouched and the
// result ranks every choice exactly once.
func TestList_PreservesPrefix(t *testing.T) {
	prefix := core.PrefList{"Y", "W"}
	out := completion.List(prefix, receiversABCD, core.NewRand(9))

	require.Len(t, out, 4)
	assert.Equal(t, prefix, out[:2])
	assert.ElementsMatch(t, receiversABCD, out)
	assert.Equal(t, core.PrefList{"Y", "W"}, prefix, "input must not be modified")
}

func TestList_EmptyPrefix(t *testing.T) {
	out := completion.List(nil, receiversABCD, core.NewRand(1))
	assert.ElementsMatch(t, receiversABCD, out)
}

func TestList_AlreadyComplete(t *testing.T) {
	prefix := core.PrefList{"Z", "Y", "X", "W"}
	out := completion.List(prefix, receiversABCD, core.NewRand(1))
	assert.Equal(t, prefix, out)
}

// TestComplete_SeedDeterminism checks that equal streams give equal
// completions even when the caller passes choices in a different order.
func TestComplete_SeedDeterminism(t *testing.T) {
	prefs := core.Prefs{
		"A": {"X"},
		"B": nil,
		"C": {"Z", "W"},
	}
	first := completion.Complete(prefs, receiversABCD, core.NewRand(5))
	second := completion.Complete(prefs, []core.AgentID{"Z", "Y", "X", "W"}, core.NewRand(5))
	assert.Equal(t, first, second)
	assert.True(t, first.IsComplete(receiversABCD))
	assert.Equal(t, core.PrefList{"X"}, prefs["A"], "input profile must not be modified")
}

// TestComplete_Uniform is a coarse sanity check: over many draws each
// missing agent lands in first position roughly equally often.
func TestComplete_Uniform(t *testing.T) {
	const draws = 4000
	rng := core.NewRand(11)
	counts := map[core.AgentID]int{}
	for i := 0; i < draws; i++ {
		out := completion.List(core.PrefList{"W"}, receiversABCD, rng)
		counts[out[1]]++
	}
	for _, id := range []core.AgentID{"X", "Y", "Z"} {
		assert.InDelta(t, draws/3, counts[id], draws/10, "agent %s", id)
	}
	assert.Zero(t, counts["W"])
}

func TestPair_CompletesBothSides(t *testing.T) {
	proposers := core.Prefs{"A": {"Y"}, "B": nil}
	receivers := core.Prefs{"X": nil, "Y": {"B"}}

	pc, rc := completion.Pair(proposers, receivers, core.NewRand(2))
	require.NoError(t, core.ValidatePair(pc, rc))
	assert.Equal(t, core.AgentID("Y"), pc["A"][0])
	assert.Equal(t, core.AgentID("B"), rc["Y"][0])
}
