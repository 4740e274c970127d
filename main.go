package main

import "github.com/theirongolddev/benchavg/cmd"

func main() {
	cmd.Execute()
}
