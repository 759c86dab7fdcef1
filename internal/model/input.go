package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// A Person is one member of the population to distribute. Category is the
// demographic label used by the balance objective.
type Person struct {
	ID       string
	Category string
}

// A PinnedAssignment fixes a person to a group during a session.
type PinnedAssignment struct {
	Person  string
	Session int
	Group   int
}

// ProblemInput is the full, immutable description of a scheduling problem.
// TimeLimitSeconds bounds the wall-clock budget of Build; Workers is consumed
// by the driver when constructing the solving backend.
type ProblemInput struct {
	People      []Person
	NumGroups   int `mapstructure:"numGroups" yaml:"numGroups"`
	GroupSize   int `mapstructure:"groupSize" yaml:"groupSize"`
	NumSessions int `mapstructure:"numSessions" yaml:"numSessions"`

	Conflicts [][2]string // pairs that must never share a group in a session
	Together  [][2]string // pairs that must always share a group
	Pinned    []PinnedAssignment

	Targets       map[string]int // desired per-group count per category
	PenaltyWeight int            `mapstructure:"penaltyWeight" yaml:"penaltyWeight"`

	TimeLimitSeconds float64 `mapstructure:"timeLimitSeconds" yaml:"timeLimitSeconds"`
	Workers          int
}

// A ConfigError reports a structurally invalid configuration, detected before
// any solver variable is created.
type ConfigError struct {
	Reason string
}

func (err ConfigError) Error() string {
	return "invalid problem configuration: " + err.Reason
}

func configErrorf(format string, args ...any) error {
	return ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// InputFromJSON reads a ProblemInput from a JSON file.
func InputFromJSON(file string) (ProblemInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return ProblemInput{}, err
	}
	var inputMap map[string]any
	if err := json.Unmarshal(bytes, &inputMap); err != nil {
		return ProblemInput{}, err
	}

	var input ProblemInput
	if err := mapstructure.Decode(inputMap, &input); err != nil {
		return ProblemInput{}, err
	}
	return input, nil
}

// InputFromYAML reads a ProblemInput from a YAML file.
func InputFromYAML(file string) (ProblemInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return ProblemInput{}, err
	}
	var input ProblemInput
	if err := yaml.Unmarshal(bytes, &input); err != nil {
		return ProblemInput{}, err
	}
	return input, nil
}

// Validate checks the configuration for structural defects: occupancy
// arithmetic, dangling references, contradictory pins and pair constraints.
// Every defect is reported as a ConfigError with a specific diagnosis.
func (input ProblemInput) Validate() error {
	if input.NumGroups <= 0 || input.GroupSize <= 0 || input.NumSessions <= 0 {
		return configErrorf("counts must be positive: groups=%d, size=%d, sessions=%d",
			input.NumGroups, input.GroupSize, input.NumSessions)
	}
	if input.PenaltyWeight <= 0 {
		return configErrorf("penalty weight must be positive, got %d", input.PenaltyWeight)
	}
	if len(input.People) != input.NumGroups*input.GroupSize {
		return configErrorf("%d people cannot fill %d groups of exactly %d",
			len(input.People), input.NumGroups, input.GroupSize)
	}

	indices := make(map[string]int, len(input.People))
	categories := make(map[string]bool)
	for i, person := range input.People {
		if person.ID == "" {
			return configErrorf("person at position %d has an empty id", i)
		}
		if _, ok := indices[person.ID]; ok {
			return configErrorf("duplicate person id %q", person.ID)
		}
		indices[person.ID] = i
		categories[person.Category] = true
	}

	for category, target := range input.Targets {
		if !categories[category] {
			return configErrorf("balance target references unknown category %q", category)
		}
		if target < 0 || target > input.GroupSize {
			return configErrorf("balance target %d for category %q is outside [0, %d]",
				target, category, input.GroupSize)
		}
	}

	pairs := make([][2]string, 0, len(input.Conflicts)+len(input.Together))
	pairs = append(pairs, input.Conflicts...)
	pairs = append(pairs, input.Together...)
	for _, pair := range pairs {
		for _, id := range pair {
			if _, ok := indices[id]; !ok {
				return configErrorf("pair constraint references unknown person %q", id)
			}
		}
		if pair[0] == pair[1] {
			return configErrorf("pair constraint pairs %q with itself", pair[0])
		}
	}

	pinnedGroup, err := input.validatePinned(indices)
	if err != nil {
		return err
	}
	for _, pair := range input.Conflicts {
		p1, p2 := indices[pair[0]], indices[pair[1]]
		for session := range input.NumSessions {
			g1, ok1 := pinnedGroup[[2]int{p1, session}]
			g2, ok2 := pinnedGroup[[2]int{p2, session}]
			if ok1 && ok2 && g1 == g2 {
				return configErrorf("conflicting pair %q/%q both pinned to group %d in session %d",
					pair[0], pair[1], g1, session)
			}
		}
	}

	return input.validateTogether(indices, pinnedGroup)
}

func (input ProblemInput) validatePinned(indices map[string]int) (map[[2]int]int, error) {
	pinnedGroup := make(map[[2]int]int) // (person, session) -> group
	pinnedCount := make(map[[2]int]int) // (session, group) -> people pinned there
	for _, pin := range input.Pinned {
		person, ok := indices[pin.Person]
		if !ok {
			return nil, configErrorf("pinned assignment references unknown person %q", pin.Person)
		}
		if pin.Session < 0 || pin.Session >= input.NumSessions {
			return nil, configErrorf("pinned assignment for %q references session %d outside [0, %d)",
				pin.Person, pin.Session, input.NumSessions)
		}
		if pin.Group < 0 || pin.Group >= input.NumGroups {
			return nil, configErrorf("pinned assignment for %q references group %d outside [0, %d)",
				pin.Person, pin.Group, input.NumGroups)
		}
		key := [2]int{person, pin.Session}
		if group, ok := pinnedGroup[key]; ok {
			if group != pin.Group {
				return nil, configErrorf("%q is pinned to both group %d and group %d in session %d",
					pin.Person, group, pin.Group, pin.Session)
			}
			continue // Duplicate pin, not a contradiction
		}
		pinnedGroup[key] = pin.Group
		slot := [2]int{pin.Session, pin.Group}
		pinnedCount[slot]++
		if pinnedCount[slot] > input.GroupSize {
			return nil, configErrorf("more than %d people pinned to group %d in session %d",
				input.GroupSize, pin.Group, pin.Session)
		}
	}
	return pinnedGroup, nil
}

// validateTogether closes the stay-together pairs under union-find and rejects
// components that cannot fit one group or that contain a conflicting pair.
func (input ProblemInput) validateTogether(indices map[string]int, pinnedGroup map[[2]int]int) error {
	parent := make([]int, len(input.People))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	for _, pair := range input.Together {
		r1, r2 := find(indices[pair[0]]), find(indices[pair[1]])
		if r1 != r2 {
			parent[r1] = r2
		}
	}

	sizes := make(map[int]int)
	for i := range input.People {
		root := find(i)
		sizes[root]++
		if sizes[root] > input.GroupSize {
			return configErrorf("stay-together chain around %q needs %d seats but groups hold %d",
				input.People[root].ID, sizes[root], input.GroupSize)
		}
	}
	for _, pair := range input.Conflicts {
		if find(indices[pair[0]]) == find(indices[pair[1]]) {
			return configErrorf("%q and %q are chained together but also conflict", pair[0], pair[1])
		}
	}
	for session := range input.NumSessions {
		componentGroup := make(map[int]int)
		for i := range input.People {
			group, ok := pinnedGroup[[2]int{i, session}]
			if !ok {
				continue
			}
			root := find(i)
			if previous, ok := componentGroup[root]; ok && previous != group {
				return configErrorf("stay-together chain around %q is pinned to both group %d and group %d in session %d",
					input.People[root].ID, previous, group, session)
			}
			componentGroup[root] = group
		}
	}
	return nil
}

func (input ProblemInput) personIndices() map[string]int {
	indices := make(map[string]int, len(input.People))
	for i, person := range input.People {
		indices[person.ID] = i
	}
	return indices
}

func (input ProblemInput) pinnedGroups() map[[2]int]int {
	pinned := make(map[[2]int]int)
	indices := input.personIndices()
	for _, pin := range input.Pinned {
		pinned[[2]int{indices[pin.Person], pin.Session}] = pin.Group
	}
	return pinned
}
