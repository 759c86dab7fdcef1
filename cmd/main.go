package main

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"strings"

	"github.com/guwidoe/PeopleDistributor/internal/model"
	"github.com/guwidoe/PeopleDistributor/internal/pb"
)

func main() {
	input := demoInput()

	solver := pb.NewGophersatSolver(runtime.NumCPU())
	scheduler := model.NewScheduler(solver)

	result, err := scheduler.Build(context.Background(), input)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Status: %v\n", result.Status)
	if result.Schedule == nil {
		return
	}

	fmt.Printf("Unique contacts: %v\n", result.UniqueContacts)
	fmt.Printf("Total penalty: %v\n", result.TotalPenalty)
	fmt.Printf("Objective: %v\n", result.ObjectiveValue)
	for session, groups := range result.Schedule {
		fmt.Printf("Session %v:\n", session)
		for group, members := range groups {
			fmt.Printf("  Group %v: %v\n", group, strings.Join(members, ", "))
		}
	}

	if !scheduler.Verify(result, input) {
		log.Fatal("Verification failed")
	}

	fmt.Println("Well done!")
}

// demoInput distributes 30 people into 5 groups of 6 across 10 sessions, with
// two feuding pairs, two people fixed into the first group of the first
// session and a 3/3 gender target per group.
func demoInput() model.ProblemInput {
	people := make([]model.Person, 0, 30)
	for i := range 30 {
		category := "male"
		if i%2 == 1 {
			category = "female"
		}
		people = append(people, model.Person{ID: fmt.Sprintf("p%v", i), Category: category})
	}

	return model.ProblemInput{
		People:      people,
		NumGroups:   5,
		GroupSize:   6,
		NumSessions: 10,
		Conflicts: [][2]string{
			{"p0", "p1"},
			{"p5", "p6"},
		},
		Pinned: []model.PinnedAssignment{
			{Person: "p2", Session: 0, Group: 0},
			{Person: "p3", Session: 0, Group: 0},
		},
		Targets:          map[string]int{"male": 3, "female": 3},
		PenaltyWeight:    10,
		TimeLimitSeconds: 30,
	}
}
