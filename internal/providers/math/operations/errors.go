package operations

import "fmt"

func errRequired(name string) error {
	return fmt.Errorf("%s parameter required", name)
}

func errInteger(name string) error {
	return fmt.Errorf("%s must be an integer", name)
}
