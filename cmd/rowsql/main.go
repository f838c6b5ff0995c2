// Command rowsql evaluates a single-table SELECT query against a table
// loaded from a file, or against the built-in student table.
package main

import (
	"context"
	"os"
)

// Version information (set by build)
var Version = "dev"

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
