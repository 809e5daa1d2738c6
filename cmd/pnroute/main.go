package main

import "github.com/avelanda/pnroute/cmd/pnroute/cmd"

func main() {
	cmd.Execute()
}
