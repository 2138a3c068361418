package main

import "github.com/shubham-khot-pro/todo-service/cmd"

func main() {
	cmd.Execute()
}
