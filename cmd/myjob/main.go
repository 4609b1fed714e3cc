package main

import "github.com/LupasteanRaoul/myjob-careercopilot/cmd/myjob/root"

func main() {
	root.Execute()
}
