package ulid

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidID(t *testing.T) {
	validULID := GenerateID()

	tests := []struct {
		id       string
		expected bool
	}{
		{validULID, true},
		{"0", false},
		{"invalidulid", false},
		{"01B4E6BXY0PRJ5G420D25MWQY!", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidID(tt.id))
		})
	}
}

func TestGenerateID(t *testing.T) {
	t.Run("uniqueness", func(t *testing.T) {
		id1 := GenerateID()
		id2 := GenerateID()
		assert.NotEqual(t, id1, id2)
	})

	t.Run("monotonic", func(t *testing.T) {
		prev := GenerateID()
		for i := 0; i < 100; i++ {
			next := GenerateID()
			assert.Less(t, prev, next)
			prev = next
		}
	})

	t.Run("no delimiter", func(t *testing.T) {
		assert.False(t, strings.Contains(GenerateID(), "-"))
	})

	t.Run("concurrent uniqueness", func(t *testing.T) {
		var wg sync.WaitGroup
		ids := make(map[string]struct{})
		mu := sync.Mutex{}

		numIDs := 10000

		wg.Add(numIDs)
		for i := 0; i < numIDs; i++ {
			go func() {
				defer wg.Done()
				id := GenerateID()
				mu.Lock()
				defer mu.Unlock()
				ids[id] = struct{}{}
			}()
		}

		wg.Wait()

		assert.Equal(t, numIDs, len(ids))
	})
}

func TestGenerators(t *testing.T) {
	defer ResetGenerator()

	MockGenerator("fixed")
	assert.Equal(t, "fixed", GenerateID())
	assert.Equal(t, "fixed", GenerateID())

	SequenceGenerator(100)
	assert.Equal(t, "100", GenerateID())
	assert.Equal(t, "101", GenerateID())

	ResetGenerator()
	assert.True(t, ValidID(GenerateID()))
}
