package model

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexAndAttributesRoundTrip(t *testing.T) {
	for range 10 {
		// Arrange
		people := rand.Intn(30) + 1
		sessions := rand.Intn(10) + 1
		groups := rand.Intn(8) + 1

		// Act
		indexer := NewIndexer(people, sessions, groups)

		// Assert
		for person := range people {
			for session := range sessions {
				for group := range groups {
					index := indexer.Index(person, session, group)
					p, s, g := indexer.Attributes(index)
					assert.Equal(t, person, p)
					assert.Equal(t, session, s)
					assert.Equal(t, group, g)
				}
			}
		}
	}
}

func TestIndicesAreDenseFromOne(t *testing.T) {
	for range 10 {
		// Arrange
		people := rand.Intn(30) + 1
		sessions := rand.Intn(10) + 1
		groups := rand.Intn(8) + 1
		indexer := NewIndexer(people, sessions, groups)

		// Act
		indices := make([]int, 0, indexer.Variables())
		for person := range people {
			for session := range sessions {
				for group := range groups {
					indices = append(indices, indexer.Index(person, session, group))
				}
			}
		}
		slices.Sort(indices)

		// Assert
		assert.Equal(t, people*sessions*groups, indexer.Variables())
		for i, index := range indices {
			assert.Equal(t, i+1, index)
		}
	}
}
