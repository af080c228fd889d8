package main

import "github.com/astrogator/voyager/cmd"

func main() {
	cmd.Execute()
}
