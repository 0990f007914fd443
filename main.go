package main

import "github.com/om-bhaiya/messle/cmd"

func main() {
	cmd.Execute()
}
