package main

import (
	"os"
	"strings"

	"xbox11/cmd/xbox11/root"
)

func main() {
	if err := root.Execute(os.Args[1:]); err != nil {
		// One line on stderr, no usage or stack trace.
		msg := strings.Join(strings.Fields(err.Error()), " ")
		if msg == "" {
			msg = "error"
		}
		_, _ = os.Stderr.WriteString("xbox11: " + msg + "\n")
		os.Exit(1)
	}
}
