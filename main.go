package main

import "github.com/jsphweid/byteserve/cmd"

func main() {
	cmd.Execute()
}
