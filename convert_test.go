package propchain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type level string

func TestConvert(t *testing.T) {
	t.Run("it should parse integer strings", func(t *testing.T) {
		// WHEN
		value, err := Convert[int64]("2")

		// THEN
		require.NoError(t, err)
		assert.Equal(t, int64(2), value)
	})

	t.Run("it should fail on non numeric strings", func(t *testing.T) {
		// WHEN
		_, err := Convert[int64]("abc")

		// THEN
		var convErr *ConversionError
		require.ErrorAs(t, err, &convErr)
		assert.Empty(t, convErr.Key)
		assert.Equal(t, "abc", convErr.Value)
		assert.ErrorContains(t, err, "cannot convert value abc to int64")
		assert.NotNil(t, convErr.Unwrap())
	})

	t.Run("it should parse integers with leading zeros as decimal", func(t *testing.T) {
		octalLike, err := Convert[int64]("010")
		require.NoError(t, err)
		assert.Equal(t, int64(10), octalLike)

		invalidOctal, err := Convert[int64]("08")
		require.NoError(t, err)
		assert.Equal(t, int64(8), invalidOctal)

		negative, err := Convert[int]("-007")
		require.NoError(t, err)
		assert.Equal(t, -7, negative)

		zero, err := Convert[uint16]("000")
		require.NoError(t, err)
		assert.Equal(t, uint16(0), zero)

		list, err := Convert[[]int]("01, 010")
		require.NoError(t, err)
		assert.Equal(t, []int{1, 10}, list)
	})

	t.Run("it should not read hexadecimal integers", func(t *testing.T) {
		// WHEN
		_, err := Convert[int64]("0x10")

		// THEN
		var convErr *ConversionError
		require.ErrorAs(t, err, &convErr)
		assert.Equal(t, "0x10", convErr.Value)
	})

	t.Run("it should return values of the requested type as is", func(t *testing.T) {
		// GIVEN
		now := time.Now()

		// WHEN
		value, err := Convert[time.Time](now)

		// THEN
		require.NoError(t, err)
		assert.Equal(t, now, value)
	})

	t.Run("it should convert between scalar types", func(t *testing.T) {
		i32, err := Convert[int32](int64(12))
		require.NoError(t, err)
		assert.Equal(t, int32(12), i32)

		f, err := Convert[float64]("1.5")
		require.NoError(t, err)
		assert.Equal(t, 1.5, f)

		u, err := Convert[uint16]("8080")
		require.NoError(t, err)
		assert.Equal(t, uint16(8080), u)

		b, err := Convert[bool]("false")
		require.NoError(t, err)
		assert.False(t, b)

		s, err := Convert[string](true)
		require.NoError(t, err)
		assert.Equal(t, "true", s)
	})

	t.Run("it should split comma separated lists", func(t *testing.T) {
		strs, err := Convert[[]string]("dev, test ,prod")
		require.NoError(t, err)
		assert.Equal(t, []string{"dev", "test", "prod"}, strs)

		ints, err := Convert[[]int]("1,2, 3")
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, ints)

		empty, err := Convert[[]string]("  ")
		require.NoError(t, err)
		assert.Empty(t, empty)

		fromSlice, err := Convert[[]string]([]any{"a", "b"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, fromSlice)
	})

	t.Run("it should convert maps", func(t *testing.T) {
		value, err := Convert[map[string]string](map[string]any{"name": "小马哥", "id": 1})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"name": "小马哥", "id": "1"}, value)
	})

	t.Run("it should convert to named types of the same kind", func(t *testing.T) {
		value, err := Convert[level]("debug")
		require.NoError(t, err)
		assert.Equal(t, level("debug"), value)
	})

	t.Run("it should refuse conversions between different kinds of named types", func(t *testing.T) {
		_, err := Convert[level](42)
		assert.ErrorContains(t, err, "unsupported conversion from int to propchain.level")

		_, err = Convert[level](nil)
		assert.ErrorContains(t, err, "nil value")
	})
}
