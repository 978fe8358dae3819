package main

import "fmt"

// errUsagef builds a plain usage/argument error; it intentionally does not
// wrap with errutil since it never has an underlying cause to preserve a
// stack for.
func errUsagef(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
