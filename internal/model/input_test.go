package model

import (
	"fmt"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validInput() ProblemInput {
	people := make([]Person, 0, 6)
	for i := range 6 {
		category := "a"
		if i%2 == 1 {
			category = "b"
		}
		people = append(people, Person{ID: fmt.Sprintf("p%v", i), Category: category})
	}
	return ProblemInput{
		People:        people,
		NumGroups:     2,
		GroupSize:     3,
		NumSessions:   2,
		Targets:       map[string]int{"a": 2, "b": 1},
		PenaltyWeight: 10,
	}
}

func TestValidateAcceptsValidInput(t *testing.T) {
	assert.Nil(t, validInput().Validate())
}

func TestValidateRejections(t *testing.T) {
	scenarios := []struct {
		name   string
		mutate func(input *ProblemInput)
	}{
		{"zero groups", func(input *ProblemInput) { input.NumGroups = 0 }},
		{"negative sessions", func(input *ProblemInput) { input.NumSessions = -1 }},
		{"zero penalty weight", func(input *ProblemInput) { input.PenaltyWeight = 0 }},
		{"occupancy mismatch", func(input *ProblemInput) { input.People = input.People[1:] }},
		{"empty person id", func(input *ProblemInput) { input.People[2].ID = "" }},
		{"duplicate person id", func(input *ProblemInput) { input.People[2].ID = "p0" }},
		{"unknown target category", func(input *ProblemInput) { input.Targets["c"] = 1 }},
		{"target above group size", func(input *ProblemInput) { input.Targets["a"] = 4 }},
		{"negative target", func(input *ProblemInput) { input.Targets["a"] = -1 }},
		{"conflict with unknown person", func(input *ProblemInput) {
			input.Conflicts = [][2]string{{"p0", "nobody"}}
		}},
		{"self conflict", func(input *ProblemInput) {
			input.Conflicts = [][2]string{{"p0", "p0"}}
		}},
		{"together with unknown person", func(input *ProblemInput) {
			input.Together = [][2]string{{"nobody", "p1"}}
		}},
		{"pin for unknown person", func(input *ProblemInput) {
			input.Pinned = []PinnedAssignment{{Person: "nobody", Session: 0, Group: 0}}
		}},
		{"pin outside session range", func(input *ProblemInput) {
			input.Pinned = []PinnedAssignment{{Person: "p0", Session: 2, Group: 0}}
		}},
		{"pin outside group range", func(input *ProblemInput) {
			input.Pinned = []PinnedAssignment{{Person: "p0", Session: 0, Group: -1}}
		}},
		{"contradictory pins", func(input *ProblemInput) {
			input.Pinned = []PinnedAssignment{
				{Person: "p0", Session: 0, Group: 0},
				{Person: "p0", Session: 0, Group: 1},
			}
		}},
		{"group overbooked by pins", func(input *ProblemInput) {
			input.Pinned = []PinnedAssignment{
				{Person: "p0", Session: 1, Group: 0},
				{Person: "p1", Session: 1, Group: 0},
				{Person: "p2", Session: 1, Group: 0},
				{Person: "p3", Session: 1, Group: 0},
			}
		}},
		{"conflicting pair pinned to the same group", func(input *ProblemInput) {
			input.Conflicts = [][2]string{{"p0", "p1"}}
			input.Pinned = []PinnedAssignment{
				{Person: "p0", Session: 0, Group: 1},
				{Person: "p1", Session: 0, Group: 1},
			}
		}},
		{"stay-together chain larger than a group", func(input *ProblemInput) {
			input.Together = [][2]string{{"p0", "p1"}, {"p1", "p2"}, {"p2", "p3"}}
		}},
		{"conflict inside a stay-together chain", func(input *ProblemInput) {
			input.Together = [][2]string{{"p0", "p1"}, {"p1", "p2"}}
			input.Conflicts = [][2]string{{"p0", "p2"}}
		}},
		{"stay-together chain pinned apart", func(input *ProblemInput) {
			input.Together = [][2]string{{"p0", "p1"}}
			input.Pinned = []PinnedAssignment{
				{Person: "p0", Session: 0, Group: 0},
				{Person: "p1", Session: 0, Group: 1},
			}
		}},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			// Arrange
			input := validInput()
			scenario.mutate(&input)

			// Act
			err := input.Validate()

			// Assert
			assert.NotNil(t, err)
			assert.ErrorAs(t, err, &ConfigError{})
		})
	}
}

func TestInputFromJSON(t *testing.T) {
	// Arrange
	file := path.Join(t.TempDir(), "input.json")
	content := `{
		"people": [
			{"id": "p0", "category": "a"},
			{"id": "p1", "category": "b"}
		],
		"numGroups": 1,
		"groupSize": 2,
		"numSessions": 3,
		"conflicts": [],
		"pinned": [{"person": "p0", "session": 0, "group": 0}],
		"targets": {"a": 1, "b": 1},
		"penaltyWeight": 10,
		"timeLimitSeconds": 2.5,
		"workers": 4
	}`
	assert.Nil(t, os.WriteFile(file, []byte(content), 0666))

	// Act
	input, err := InputFromJSON(file)

	// Assert
	assert.Nil(t, err)
	assert.Equal(t, []Person{{ID: "p0", Category: "a"}, {ID: "p1", Category: "b"}}, input.People)
	assert.Equal(t, 1, input.NumGroups)
	assert.Equal(t, 2, input.GroupSize)
	assert.Equal(t, 3, input.NumSessions)
	assert.Equal(t, []PinnedAssignment{{Person: "p0", Session: 0, Group: 0}}, input.Pinned)
	assert.Equal(t, map[string]int{"a": 1, "b": 1}, input.Targets)
	assert.Equal(t, 10, input.PenaltyWeight)
	assert.Equal(t, 2.5, input.TimeLimitSeconds)
	assert.Equal(t, 4, input.Workers)
	assert.Nil(t, input.Validate())
}

func TestInputFromYAML(t *testing.T) {
	// Arrange
	file := path.Join(t.TempDir(), "input.yaml")
	content := `
people:
  - id: p0
    category: a
  - id: p1
    category: b
numGroups: 1
groupSize: 2
numSessions: 2
together:
  - [p0, p1]
targets:
  a: 1
  b: 1
penaltyWeight: 5
`
	assert.Nil(t, os.WriteFile(file, []byte(content), 0666))

	// Act
	input, err := InputFromYAML(file)

	// Assert
	assert.Nil(t, err)
	assert.Equal(t, []Person{{ID: "p0", Category: "a"}, {ID: "p1", Category: "b"}}, input.People)
	assert.Equal(t, [][2]string{{"p0", "p1"}}, input.Together)
	assert.Equal(t, 5, input.PenaltyWeight)
	assert.Nil(t, input.Validate())
}

func TestValidateToleratesDuplicatePins(t *testing.T) {
	// Arrange
	input := validInput()
	input.Pinned = []PinnedAssignment{
		{Person: "p0", Session: 0, Group: 0},
		{Person: "p0", Session: 0, Group: 0},
	}

	// Assert
	assert.Nil(t, input.Validate())
}
