package main

import "github.com/mj1618/desktop-mcp/cmd"

func main() {
	cmd.Execute()
}
