//go:build !ebiten

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "sand-gui needs the ebiten build tag: go build -tags ebiten ./cmd/sand-gui")
	fmt.Fprintln(os.Stderr, "Use ./cmd/sand for the terminal version.")
	os.Exit(2)
}
