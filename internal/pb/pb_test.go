package pb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToOPB(t *testing.T) {
	t.Run("clauses and cardinalities", func(t *testing.T) {
		// Arrange
		instance := PB{
			Variables: 3,
			Constraints: []Constraint{
				Clause(1, -2),
				Exactly([]int{1, 2, 3}, 2),
			},
		}

		// Act
		opb := instance.ToOPB()

		// Assert
		lines := strings.Split(strings.TrimSpace(opb), "\n")
		assert.Equal(t, "* #variable= 3 #constraint= 2", lines[0])
		assert.Equal(t, " 1 x1 1 ~x2 >= 1 ;", lines[1])
		assert.Equal(t, " 1 x1 1 x2 1 x3 = 2 ;", lines[2])
	})

	t.Run("objective comes before constraints", func(t *testing.T) {
		// Arrange
		instance := PB{
			Variables:   2,
			Constraints: []Constraint{Clause(1, 2)},
			Min: []Term{
				{Weight: 1, Literal: -1},
				{Weight: 10, Literal: 2},
			},
		}

		// Act
		opb := instance.ToOPB()

		// Assert
		lines := strings.Split(strings.TrimSpace(opb), "\n")
		assert.Equal(t, "min: 1 ~x1 10 x2 ;", lines[1])
		assert.Equal(t, " 1 x1 1 x2 >= 1 ;", lines[2])
	})
}

func TestLtEqNormalization(t *testing.T) {
	// Arrange: x1 + 2*x2 <= 2
	constraint := LtEq([]int{1, 2}, []int{1, 2}, 2)

	// Assert: becomes ~x1 + 2*~x2 >= 1
	assert.Equal(t, []int{-1, -2}, constraint.Literals)
	assert.Equal(t, []int{1, 2}, constraint.Weights)
	assert.Equal(t, 1, constraint.AtLeast)

	// The normalized form must agree with the original on every model
	for bits := range 4 {
		model := []bool{bits&1 != 0, bits&2 != 0}
		sum := 0
		if model[0] {
			sum += 1
		}
		if model[1] {
			sum += 2
		}
		assert.Equal(t, sum <= 2, Satisfies(PB{Variables: 2, Constraints: []Constraint{constraint}}, model))
	}
}

func TestShuffled(t *testing.T) {
	// Arrange
	instance := PB{Variables: 10}
	for i := 1; i <= 9; i++ {
		instance.Constraints = append(instance.Constraints, Clause(i, i+1))
	}

	// Act
	first := instance.Shuffled(42)
	second := instance.Shuffled(42)
	other := instance.Shuffled(43)

	// Assert: same seed gives the same order, the original is untouched and
	// every constraint survives the permutation
	assert.Equal(t, first.Constraints, second.Constraints)
	assert.Equal(t, Clause(1, 2), instance.Constraints[0])
	assert.ElementsMatch(t, instance.Constraints, first.Constraints)
	assert.ElementsMatch(t, instance.Constraints, other.Constraints)
}

func TestSatisfiesAndCost(t *testing.T) {
	// Arrange
	instance := PB{
		Variables: 3,
		Constraints: []Constraint{
			Clause(1, 2),
			Exactly([]int{1, 2, 3}, 1),
		},
		Min: []Term{
			{Weight: 5, Literal: 1},
			{Weight: 3, Literal: -3},
		},
	}

	// Assert
	assert.True(t, Satisfies(instance, []bool{true, false, false}))
	assert.False(t, Satisfies(instance, []bool{false, false, true}), "violates the clause")
	assert.False(t, Satisfies(instance, []bool{true, true, false}), "violates the exact cardinality")
	assert.Equal(t, 8, Cost(instance, []bool{true, false, false}))
	assert.Equal(t, 5, Cost(instance, []bool{true, false, true}))
}
