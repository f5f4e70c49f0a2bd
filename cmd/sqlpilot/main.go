package main

import "github.com/entrepeneur4lyf/sqlpilot/cmd/sqlpilot/cmd"

func main() {
	cmd.Execute()
}
