package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	err := newRootCommand().Execute()
	if err == nil {
		return
	}
	// Interrupts already print nothing useful.
	if !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "greenroom:", err)
	}
	os.Exit(1)
}
