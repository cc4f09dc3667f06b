package main

import "github.com/clipvault/clipvault/internal/cli/cmd"

func main() {
	cmd.Execute()
}
