package main

import "naca/cmd"

func main() {
	cmd.Execute()
}
