package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shaiso/scriptdeck/internal/client"
)

// NewFileCmd создаёт группу команд для работы с файловым хранилищем backend.
func NewFileCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file",
		Short: "Manage uploaded files",
	}

	cmd.AddCommand(
		newFileListCmd(clientFn, outputFn),
		newFileUploadCmd(clientFn, outputFn),
		newFileDownloadURLCmd(clientFn, outputFn),
		newFilePreviewCmd(clientFn, outputFn),
		newFileDeleteCmd(clientFn, outputFn),
		newFileMkdirCmd(clientFn, outputFn),
		newFileUpdateCmd(clientFn, outputFn),
	)

	return cmd
}

var fileHeaders = []string{"NAME", "TYPE", "SIZE", "MODIFIED"}

func fileRow(f client.FileEntry) []string {
	kind, size := "file", formatSize(f.Size)
	if f.IsDir {
		kind, size = "dir", ""
	}
	modified := ""
	if f.ModifiedAt > 0 {
		sec := int64(f.ModifiedAt)
		modified = time.Unix(sec, 0).UTC().Format(time.RFC3339)
	}
	return []string{f.Name, kind, size, modified}
}

func newFileListCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list [PATH]",
		Short: "List files in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			resp, err := clientFn().GetFiles(cmd.Context(), path)
			if err != nil {
				return err
			}
			return printList(outputFn(), resp, fileHeaders, fileRow)
		},
	}
}

func newFileUploadCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "upload LOCAL_FILE",
		Short: "Upload a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form := client.NewForm().SetField("path", dir)
			closer, err := form.AddFileFromPath("file", args[0])
			if err != nil {
				return err
			}
			defer closer.Close()

			resp, err := clientFn().UploadFile(cmd.Context(), form)
			if err != nil {
				return err
			}

			printMessage(outputFn(), resp, fmt.Sprintf("Uploaded: %s", fileBase(args[0])))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "path", "", "Target directory")

	return cmd
}

func newFileDownloadURLCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "download-url PATH",
		Short: "Print the download URL of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFn().Raw(clientFn().DownloadFileURL(args[0]))
			return nil
		},
	}
}

func newFilePreviewCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "preview PATH",
		Short: "Preview a text or Excel file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := clientFn().PreviewFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printPreview(outputFn(), resp)
		},
	}
}

func newFileDeleteCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "delete PATH",
		Short: "Delete a file or directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := clientFn().DeleteFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printMessage(outputFn(), resp, fmt.Sprintf("Deleted: %s", args[0]))
			return nil
		},
	}
}

func newFileMkdirCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "mkdir NAME",
		Short: "Create a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := clientFn().CreateFolder(cmd.Context(), client.FolderRequest{
				Path: parent,
				Name: args[0],
			})
			if err != nil {
				return err
			}

			printMessage(outputFn(), resp, fmt.Sprintf("Directory created: %s", args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&parent, "path", "", "Parent directory")

	return cmd
}

func newFileUpdateCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "update PATH LOCAL_FILE",
		Short: "Replace the content of a text file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[1], err)
			}

			resp, err := clientFn().UpdateFile(cmd.Context(), client.FileUpdateRequest{
				Path:    args[0],
				Content: string(content),
			})
			if err != nil {
				return err
			}

			printMessage(outputFn(), resp, fmt.Sprintf("Updated: %s", args[0]))
			return nil
		},
	}
}
