package pb

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// A Term is one weighted literal of the minimization objective. A positive
// literal contributes Weight to the cost when the variable is true, a negative
// literal when the variable is false.
type Term struct {
	Weight  int
	Literal int
}

// A Constraint states that the weighted sum of its literals is at least (or,
// when Exact, exactly) AtLeast. Literals are non-zero integers in the usual
// DIMACS convention: a negative value stands for the negation of the variable.
// A nil Weights slice means every literal weighs 1.
type Constraint struct {
	Literals []int
	Weights  []int
	AtLeast  int
	Exact    bool
}

// Clause returns a propositional clause: at least one literal must be true.
func Clause(literals ...int) Constraint {
	return Constraint{Literals: literals, AtLeast: 1}
}

// AtLeast returns a cardinality constraint over unit-weight literals.
func AtLeast(literals []int, n int) Constraint {
	return Constraint{Literals: literals, AtLeast: n}
}

// Exactly returns a cardinality constraint satisfied when exactly n of the
// literals are true.
func Exactly(literals []int, n int) Constraint {
	return Constraint{Literals: literals, AtLeast: n, Exact: true}
}

// GtEq returns the constraint sum(weights[i]*literals[i]) >= n. Weights must
// all be positive; negation is expressed through the literals.
func GtEq(literals, weights []int, n int) Constraint {
	return Constraint{Literals: literals, Weights: weights, AtLeast: n}
}

// LtEq returns the constraint sum(weights[i]*literals[i]) <= n, normalized to
// the >= form over negated literals since OPB only has >= and =.
func LtEq(literals, weights []int, n int) Constraint {
	negated := make([]int, len(literals))
	sum := 0
	for i, literal := range literals {
		negated[i] = -literal
		sum += weights[i]
	}
	return Constraint{Literals: negated, Weights: weights, AtLeast: sum - n}
}

// PB is a pseudo-boolean optimization instance: a conjunction of hard
// constraints plus a linear objective to minimize. Variables are numbered
// from 1 to Variables.
type PB struct {
	Variables   int
	Constraints []Constraint
	Min         []Term
}

// ToOPB serializes the instance to the OPB text format understood by
// pseudo-boolean solvers (see http://www.cril.univ-artois.fr/PB16/format.pdf).
func (p PB) ToOPB() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "* #variable= %d #constraint= %d\n", p.Variables, len(p.Constraints))
	if len(p.Min) > 0 {
		builder.WriteString("min:")
		for _, term := range p.Min {
			writeTerm(&builder, term.Weight, term.Literal)
		}
		builder.WriteString(" ;\n")
	}
	for _, constraint := range p.Constraints {
		for i, literal := range constraint.Literals {
			weight := 1
			if constraint.Weights != nil {
				weight = constraint.Weights[i]
			}
			writeTerm(&builder, weight, literal)
		}
		operator := ">="
		if constraint.Exact {
			operator = "="
		}
		fmt.Fprintf(&builder, " %s %d ;\n", operator, constraint.AtLeast)
	}
	return builder.String()
}

func writeTerm(builder *strings.Builder, weight, literal int) {
	if literal < 0 {
		fmt.Fprintf(builder, " %d ~x%d", weight, -literal)
	} else {
		fmt.Fprintf(builder, " %d x%d", weight, literal)
	}
}

// Shuffled returns a copy of the instance with its constraints in a
// pseudo-random order. Constraint order steers the backend's clause database
// and thus its search trajectory, which is what diversifies portfolio workers.
func (p PB) Shuffled(seed uint64) PB {
	shuffled := p
	shuffled.Constraints = make([]Constraint, len(p.Constraints))
	copy(shuffled.Constraints, p.Constraints)
	rng := rand.New(rand.NewPCG(seed, seed))
	rng.Shuffle(len(shuffled.Constraints), func(i, j int) {
		shuffled.Constraints[i], shuffled.Constraints[j] = shuffled.Constraints[j], shuffled.Constraints[i]
	})
	return shuffled
}
