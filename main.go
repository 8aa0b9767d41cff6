package main

import keysweep "github.com/keysweep/keysweep/cmd/keysweep"

func main() {
	keysweep.Execute()
}
