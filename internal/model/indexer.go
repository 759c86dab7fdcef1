package model

// Indexer gives a unique 1-based solver variable to each combination of
// assignment attributes and vice versa.
type Indexer interface {
	// Index returns the variable stating that person occupies group during session.
	Index(person, session, group int) int
	// Attributes decodes a variable from the assignment block.
	Attributes(index int) (person, session, group int)
	// Variables returns the size of the assignment block.
	Variables() int
}

func NewIndexer(people, sessions, groups int) Indexer {
	return &sortedIndexer{
		people:   people,
		sessions: sessions,
		groups:   groups,
	}
}
