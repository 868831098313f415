package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/pendsim/internal/dynamo"
)

var factories = map[string]dynamo.StepperFactory{
	"rk4": func(n int) (dynamo.Stepper, error) {
		r, err := NewRK4(n)
		if err != nil {
			return nil, err
		}
		return r, nil
	},
	"euler": func(n int) (dynamo.Stepper, error) {
		e, err := NewEuler(n)
		if err != nil {
			return nil, err
		}
		return e, nil
	},
}

// Factory returns the constructor registered under name.
func Factory(name string) (dynamo.StepperFactory, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", dynamo.ErrUnknownStepper, name, Names())
	}
	return f, nil
}

func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
