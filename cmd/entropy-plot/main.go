package main

import (
	"os"

	"kunitzscan/internal/entropyapp"
)

func main() {
	os.Exit(entropyapp.Run(os.Args[1:], os.Stdout, os.Stderr))
}
