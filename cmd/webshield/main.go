package main

import (
	"github.com/webshield/webshield/internal/cmd"
)

func main() {
	cmd.Main()
}
