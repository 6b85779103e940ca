package main

import (
	"flag"
	"os"
)

func main() {
	// glog registers its flags on the default FlagSet.
	flag.CommandLine.Parse([]string{})
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
