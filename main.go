package main

import "github.com/inovacc/phonebook/cmd"

func main() {
	cmd.Execute()
}
