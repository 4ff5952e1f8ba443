package job

import (
	"testing"

	"github.com/realchief/RenderShotPanel/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batchCost(accepted []TaskUpdate) float64 {
	var total float64
	for _, u := range accepted {
		total += u.Cost
	}
	return total
}

func TestBuildRollup(t *testing.T) {
	t.Run("ten tasks at six seconds each", func(t *testing.T) {
		reports := make(map[int]dto.TaskReport, 10)
		for i := 0; i < 10; i++ {
			reports[i] = dto.TaskReport{RenderTime: 0.1}
		}

		accepted := BuildRollup(reports, 1.0)

		require.Len(t, accepted, 10)
		assert.InDelta(t, 1.0, batchCost(accepted), 1e-9)
	})

	t.Run("corrupt render time is dropped entirely", func(t *testing.T) {
		reports := map[int]dto.TaskReport{
			1: {RenderTime: 10},
			2: {RenderTime: 2500},
			3: {RenderTime: 20},
		}

		accepted := BuildRollup(reports, 0.5)

		require.Len(t, accepted, 2)
		for _, u := range accepted {
			assert.NotEqual(t, 2, u.TaskID)
		}
		assert.InDelta(t, 15.0, batchCost(accepted), 1e-9)
	})

	t.Run("ceiling is inclusive", func(t *testing.T) {
		reports := map[int]dto.TaskReport{1: {RenderTime: 2000}}

		accepted := BuildRollup(reports, 1.0)

		require.Len(t, accepted, 1)
		assert.InDelta(t, 2000.0, accepted[0].Cost, 1e-9)
	})

	t.Run("same batch prices the same twice", func(t *testing.T) {
		reports := map[int]dto.TaskReport{
			7: {RenderTime: 12.5},
			8: {RenderTime: 3.25},
		}

		first := BuildRollup(reports, 0.08)
		second := BuildRollup(reports, 0.08)

		assert.InDelta(t, batchCost(first), batchCost(second), 1e-9)
	})

	t.Run("empty batch", func(t *testing.T) {
		assert.Empty(t, BuildRollup(nil, 1.0))
	})
}
