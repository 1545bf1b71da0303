package main

import "github.com/dbsmedya/topictables/cmd/topictables/cmd"

func main() {
	cmd.Execute()
}
