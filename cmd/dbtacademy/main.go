// Package main provides the dbtacademy CLI.
package main

import (
	"os"

	"github.com/jimvekemans/dbt-academy/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
