package propchain

import (
	"fmt"
	"strings"

	"github.com/a-peyrard/propchain/set"
)

// tracker records the placeholders being expanded, to detect circular references.
type tracker struct {
	visited set.Set[string]
	stack   []string
}

func newTracker() *tracker {
	return &tracker{
		visited: set.New[string](),
		stack:   make([]string, 0),
	}
}

func (t *tracker) push(key string) error {
	if t.visited.Contains(key) {
		cycle := []string{key}
		for i := len(t.stack) - 1; i >= 0; i-- {
			cycle = append(cycle, t.stack[i])
			if t.stack[i] == key {
				break
			}
		}
		return fmt.Errorf("%w:\n%s", ErrCircularPlaceholder, formatCycle(cycle))
	}
	t.visited.Add(key)
	t.stack = append(t.stack, key)

	return nil
}

func (t *tracker) pop() string {
	if len(t.stack) == 0 {
		panic("tracker: pop from empty stack")
	}
	key := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	t.visited.Remove(key)

	return key
}

func formatCycle(cycle []string) string {
	var b strings.Builder
	for i := len(cycle) - 1; i >= 0; i-- {
		depth := len(cycle) - 1 - i
		b.WriteString(strings.Repeat("\t", depth))
		if depth > 0 {
			b.WriteString(" -> ")
		}
		b.WriteString("${" + cycle[i] + "}\n")
	}
	return b.String()
}
