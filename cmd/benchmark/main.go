package main

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/guwidoe/PeopleDistributor/internal/model"
	"github.com/guwidoe/PeopleDistributor/internal/pb"
)

const timeLimitSeconds = 20

type scenario struct {
	groups   int
	size     int
	sessions int
}

var scenarios = []scenario{
	{groups: 2, size: 3, sessions: 2},
	{groups: 3, size: 4, sessions: 3},
	{groups: 4, size: 5, sessions: 4},
	{groups: 5, size: 6, sessions: 6},
	{groups: 5, size: 6, sessions: 10},
}

func main() {
	workers := runtime.NumCPU()
	scheduler := model.NewScheduler(pb.NewGophersatSolver(workers))

	fmt.Printf("%-10v %-10v %-10v %-20v %-10v %-10v %-10v\n",
		"People", "Groups", "Sessions", "Status", "Contacts", "Penalty", "Seconds")
	for _, current := range scenarios {
		input := generate(current)

		start := time.Now()
		result, err := scheduler.Build(context.Background(), input)
		elapsed := time.Since(start)
		if err != nil {
			log.Fatalf("benchmark scenario failed: %v", err)
		}
		if result.Schedule != nil && !scheduler.Verify(result, input) {
			log.Fatal("benchmark scenario produced an invalid schedule")
		}

		fmt.Printf("%-10v %-10v %-10v %-20v %-10v %-10v %-10.2f\n",
			current.groups*current.size, current.groups, current.sessions,
			result.Status, result.UniqueContacts, result.TotalPenalty,
			elapsed.Seconds())
	}
}

func generate(current scenario) model.ProblemInput {
	count := current.groups * current.size
	people := make([]model.Person, 0, count)
	for i := range count {
		category := "a"
		if i%2 == 1 {
			category = "b"
		}
		people = append(people, model.Person{ID: fmt.Sprintf("p%v", i), Category: category})
	}

	return model.ProblemInput{
		People:      people,
		NumGroups:   current.groups,
		GroupSize:   current.size,
		NumSessions: current.sessions,
		Conflicts:   [][2]string{{"p0", "p1"}},
		Targets: map[string]int{
			"a": (current.size + 1) / 2,
			"b": current.size / 2,
		},
		PenaltyWeight:    10,
		TimeLimitSeconds: timeLimitSeconds,
	}
}
