package main

import "github.com/jsphweid/barline/cmd"

func main() {
	cmd.Execute()
}
