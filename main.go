package main

import "github.com/stralab/goltd/cmd"

func main() {
	cmd.Execute()
}
