package main

import (
	"os"

	_ "golang.org/x/crypto/x509roots/fallback"
)

func main() {
	rootCmd, state := newRootCmd()
	err := rootCmd.Execute()
	state.close()
	if err != nil {
		os.Exit(1)
	}
}
