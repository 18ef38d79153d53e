package app

import (
	"context"
	"fmt"

	"xbox11/internal/command"
)

// GreetArgs is the payload of the greet command.
type GreetArgs struct {
	Name string `json:"name"`
}

// Greet formats the greeting returned to the front-end. It has no side effects.
func Greet(name string) string {
	return fmt.Sprintf("Hello, %s! You've been greeted from Rust!", name)
}

// Commands is the fixed command table of the shell.
func Commands() []command.Entry {
	return []command.Entry{
		{
			Name: "greet",
			Handler: command.Typed(func(_ context.Context, args GreetArgs) (string, error) {
				return Greet(args.Name), nil
			}),
		},
	}
}
