package main

import "github.com/jsphweid/ireal/cmd"

func main() {
	cmd.Execute()
}
