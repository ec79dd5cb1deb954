package main

import "github.com/simplefinance/simplefinance/cmd"

func main() {
	cmd.Execute()
}
