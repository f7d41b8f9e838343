// Command dotparse parses Graphviz DOT files.
package main

import "os"

func main() {
	os.Exit(newApp().execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
