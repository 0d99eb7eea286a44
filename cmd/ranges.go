package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jsphweid/byteserve/ranges"
)

var rangesFlags struct {
	path string
	size uint64
}

func init() {
	rangesCmd.Flags().StringVar(&rangesFlags.path, "file", "", "file whose size the header is parsed against")
	rangesCmd.Flags().Uint64Var(&rangesFlags.size, "size", 0, "explicit file size in bytes")
	rootCmd.AddCommand(rangesCmd)
}

// rangesCmd shows what the parser makes of a Range header, which is
// handy when debugging odd client behavior.
var rangesCmd = &cobra.Command{
	Use:   "ranges <header>",
	Short: "Show how a Range header parses against a file",
	Long:  `Show how a Range header parses against a file`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		size := rangesFlags.size
		if rangesFlags.path != "" {
			info, err := os.Stat(rangesFlags.path)
			if err != nil {
				return errors.Wrap(err, "stat file")
			}
			size = uint64(info.Size())
		}
		if size == 0 && rangesFlags.path == "" {
			return errors.New("either --file or --size is required")
		}

		set, err := ranges.Parse(args[0], size)
		if err != nil {
			return err
		}
		if len(set) == 0 {
			fmt.Println("no ranges requested (full file)")
			return nil
		}
		for i, r := range set {
			fmt.Printf("%d: bytes %d-%d (%d bytes)\n", i, r.Start, r.End, r.Length())
		}
		fmt.Printf("total payload: %d bytes\n", set.TotalLength())
		return nil
	},
}
