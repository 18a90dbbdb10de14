package main

import "github.com/oyakata/blockpack/cmd/blockpack/cmd"

func main() {
	cmd.Execute()
}
