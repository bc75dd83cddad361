package main

import "comics-etl/cmd"

func main() {
	cmd.Execute()
}
