package fn

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllTriConsumer(t *testing.T) {
	t.Run("it should call every consumer in order", func(t *testing.T) {
		// GIVEN
		var calls []string
		first := func(a string, b int, c []string) {
			calls = append(calls, "first:"+a)
		}
		second := func(a string, b int, c []string) {
			calls = append(calls, "second:"+strings.Join(c, "."))
		}

		// WHEN
		AllTriConsumer[string, int, []string](first, second)("user", 1, []string{"user", "name"})

		// THEN
		assert.Equal(t, []string{"first:user", "second:user.name"}, calls)
	})

	t.Run("it should do nothing without consumers", func(t *testing.T) {
		// GIVEN / WHEN / THEN
		assert.NotPanics(t, func() {
			AllTriConsumer[int, int, int]()(1, 2, 3)
		})
	})
}
