package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// upload <file>: store an image and print its reference.
func uploadCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a product image (jpg, jpeg or png)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			ref, err := s.api.UploadImage(cmd.Context(), filepath.Base(args[0]), file)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ref)
			return nil
		},
	}
}
