package model

type sortedIndexer struct {
	people   int
	sessions int
	groups   int
}

func (i *sortedIndexer) Index(person, session, group int) int {
	return 1 + group + i.groups*session + i.groups*i.sessions*person
}

func (i *sortedIndexer) Attributes(index int) (person, session, group int) {
	index--

	group = index % i.groups
	index = index / i.groups

	session = index % i.sessions
	index = index / i.sessions

	person = index

	return person, session, group
}

func (i *sortedIndexer) Variables() int {
	return i.people * i.sessions * i.groups
}
