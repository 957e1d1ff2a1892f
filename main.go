package main

import "github.com/kamusis/mtlist/cmd"

func main() {
	cmd.Execute()
}
