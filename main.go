package main

import "github.com/josephgoksu/planwing/cmd"

func main() {
	cmd.Execute()
}
