package completion_test

import (
	"fmt"

	"github.com/katalvlaran/lvmatch/completion"
	"github.com/katalvlaran/lvmatch/core"
)

// ExampleList keeps the given prefix and appends the rest in random order.
func ExampleList() {
	choices := []core.AgentID{"a", "b", "c", "d"}
	out := completion.List(core.PrefList{"c"}, choices, core.NewRand(42))

	fmt.Println(out[0], len(out), core.Prefs{"x": out}.IsComplete(choices))

	// Output:
	// c 4 true
}
