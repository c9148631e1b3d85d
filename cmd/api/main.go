// @title           Technotes API
// @version         1.0
// @description     Notes and users management API.
// @host            localhost:3500
// @BasePath        /
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
