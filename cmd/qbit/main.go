package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Local runs keep credentials in .env; absence is fine.
	_ = godotenv.Load()

	root := &cobra.Command{Use: "qbit", Short: "THE QBIT daily briefing service"}
	root.AddCommand(serveCMD(), prefetchCMD())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
