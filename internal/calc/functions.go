package calc

import (
	"fmt"
	"math"
	"strings"
)

type function struct {
	minArgs int
	maxArgs int // -1 for variadic
	call    func(args []float64) (float64, error)
}

func unary(f func(float64) float64) function {
	return function{minArgs: 1, maxArgs: 1, call: func(a []float64) (float64, error) {
		return f(a[0]), nil
	}}
}

func binary(f func(float64, float64) float64) function {
	return function{minArgs: 2, maxArgs: 2, call: func(a []float64) (float64, error) {
		return f(a[0], a[1]), nil
	}}
}

func domain(f func(float64) float64, ok func(float64) bool) function {
	return function{minArgs: 1, maxArgs: 1, call: func(a []float64) (float64, error) {
		if !ok(a[0]) {
			return 0, ErrMath
		}
		return f(a[0]), nil
	}}
}

var functions = map[string]function{
	"sqrt":  domain(math.Sqrt, func(v float64) bool { return v >= 0 }),
	"abs":   unary(math.Abs),
	"sin":   unary(math.Sin),
	"cos":   unary(math.Cos),
	"tan":   unary(math.Tan),
	"asin":  domain(math.Asin, func(v float64) bool { return v >= -1 && v <= 1 }),
	"acos":  domain(math.Acos, func(v float64) bool { return v >= -1 && v <= 1 }),
	"atan":  unary(math.Atan),
	"log":   domain(math.Log, positive),
	"ln":    domain(math.Log, positive),
	"log10": domain(math.Log10, positive),
	"log2":  domain(math.Log2, positive),
	"exp":   unary(math.Exp),
	"floor": unary(math.Floor),
	"ceil":  unary(math.Ceil),
	"round": unary(math.RoundToEven),
	"pow":   binary(math.Pow),
	"hypot": binary(math.Hypot),
	"min": {minArgs: 1, maxArgs: -1, call: func(a []float64) (float64, error) {
		v := a[0]
		for _, x := range a[1:] {
			v = math.Min(v, x)
		}
		return v, nil
	}},
	"max": {minArgs: 1, maxArgs: -1, call: func(a []float64) (float64, error) {
		v := a[0]
		for _, x := range a[1:] {
			v = math.Max(v, x)
		}
		return v, nil
	}},
}

var constants = map[string]float64{
	"pi":  math.Pi,
	"e":   math.E,
	"tau": 2 * math.Pi,
}

func positive(v float64) bool { return v > 0 }

func lookupFunction(name string, argc int) (function, error) {
	fn, ok := functions[strings.ToLower(name)]
	if !ok {
		return function{}, fmt.Errorf("function %q: %w", name, ErrUnknownName)
	}
	if argc < fn.minArgs || (fn.maxArgs >= 0 && argc > fn.maxArgs) {
		return function{}, fmt.Errorf("%s takes %s, got %d: %w", name, arityText(fn), argc, ErrArity)
	}
	return fn, nil
}

func arityText(fn function) string {
	switch {
	case fn.maxArgs < 0:
		return fmt.Sprintf("at least %d arguments", fn.minArgs)
	case fn.minArgs == 1 && fn.maxArgs == 1:
		return "1 argument"
	default:
		return fmt.Sprintf("%d arguments", fn.minArgs)
	}
}
