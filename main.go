// Command crownetbrain runs the hormone-modulated spiking network simulator
// and its coaching loop. See cmd for the Cobra subcommands (brain, coach,
// stimulate).
package main

import "crownetbrain/cmd"

func main() {
	cmd.Execute()
}
