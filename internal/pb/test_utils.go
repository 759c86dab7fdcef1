package pb

// Satisfies reports whether model fulfills every hard constraint of the
// instance. Used by tests and by schedule verification.
func Satisfies(instance PB, model []bool) bool {
	for _, constraint := range instance.Constraints {
		sum := 0
		for i, literal := range constraint.Literals {
			weight := 1
			if constraint.Weights != nil {
				weight = constraint.Weights[i]
			}
			if holds(literal, model) {
				sum += weight
			}
		}
		if sum < constraint.AtLeast {
			return false
		}
		if constraint.Exact && sum != constraint.AtLeast {
			return false
		}
	}
	return true
}

// Cost evaluates the minimization objective of the instance under model.
func Cost(instance PB, model []bool) int {
	cost := 0
	for _, term := range instance.Min {
		if holds(term.Literal, model) {
			cost += term.Weight
		}
	}
	return cost
}

func holds(literal int, model []bool) bool {
	variable := literal
	if variable < 0 {
		variable = -variable
	}
	if variable > len(model) {
		return literal < 0 // Variables beyond the model default to false
	}
	if literal < 0 {
		return !model[variable-1]
	}
	return model[variable-1]
}
