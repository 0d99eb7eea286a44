package cmd

import (
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "byteserve",
	Short: "Byte-range capable file server",
	Long: `byteserve serves local files over HTTP, honoring Range headers:
full-file delivery, single partial ranges and multipart/byteranges bodies.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(func() {
		if err := godotenv.Load(); err != nil {
			log.Debugf("no .env loaded: %v", err)
		}
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	})
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
