package ast

import "sort"

// Variables returns the set of variable names referenced by an expression,
// sorted for deterministic iteration. The result is used to decide solver
// arity, so order must not depend on tree shape.
func Variables(expr Expression) []string {
	seen := make(map[string]struct{})
	collectVariables(expr, seen)
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func collectVariables(expr Expression, seen map[string]struct{}) {
	switch node := expr.(type) {
	case *NumberLiteral:
	case *Identifier:
		seen[node.Value] = struct{}{}
	case *PrefixExpression:
		collectVariables(node.Right, seen)
	case *InfixExpression:
		collectVariables(node.Left, seen)
		collectVariables(node.Right, seen)
	case *FunctionCall:
		collectVariables(node.Arg, seen)
	case *Equation:
		collectVariables(node.Lhs, seen)
		collectVariables(node.Rhs, seen)
	}
}
