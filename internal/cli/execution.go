package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaiso/scriptdeck/internal/client"
)

// NewExecutionCmd создаёт группу команд для просмотра выполнений скриптов.
func NewExecutionCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "execution",
		Aliases: []string{"exec"},
		Short:   "Inspect script executions",
	}

	cmd.AddCommand(
		newExecutionListCmd(clientFn, outputFn),
		newExecutionShowCmd(clientFn, outputFn),
		newExecutionDeleteCmd(clientFn, outputFn),
		newExecutionLogsCmd(clientFn, outputFn),
		newExecutionCancelCmd(clientFn, outputFn),
		newExecutionFilesCmd(clientFn, outputFn),
		newExecutionFileURLCmd(clientFn, outputFn),
		newExecutionPreviewCmd(clientFn, outputFn),
	)

	return cmd
}

var executionHeaders = []string{"ID", "SCRIPT", "STATUS", "PROGRESS", "ENVIRONMENT", "STARTED", "FINISHED"}

func executionRow(e client.Execution) []string {
	script := e.ScriptName
	if script == "" {
		script = itoa(e.ScriptID)
	}
	progress := ""
	if e.Progress > 0 {
		progress = fmt.Sprintf("%d%%", e.Progress)
	}
	env := e.EnvironmentName
	if env == "" {
		env = optional(e.EnvironmentID)
	}
	return []string{
		itoa(e.ID), script, e.Status, progress, env, e.StartTime, e.EndTime,
	}
}

func newExecutionListCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	var lf listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List executions",
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := lf.query()
			if err != nil {
				return err
			}

			resp, err := clientFn().GetExecutions(cmd.Context(), query)
			if err != nil {
				return err
			}
			return printList(outputFn(), resp, executionHeaders, executionRow)
		},
	}

	lf.register(cmd)
	cmd.Flags().IntVar(&lf.scriptID, "script-id", 0, "Filter by script ID")
	cmd.Flags().StringVar(&lf.status, "status", "", "Filter by status (pending, running, success, failed, cancelled)")

	return cmd
}

func newExecutionShowCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show execution details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			resp, err := clientFn().GetExecution(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printOne(outputFn(), resp, executionHeaders, executionRow)
		},
	}
}

func newExecutionDeleteCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an execution record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			resp, err := clientFn().DeleteExecution(cmd.Context(), id)
			if err != nil {
				return err
			}

			printMessage(outputFn(), resp, fmt.Sprintf("Execution deleted: %d", id))
			return nil
		},
	}
}

func newExecutionLogsCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	var streamURL bool

	cmd := &cobra.Command{
		Use:   "logs ID",
		Short: "Print execution logs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			api := clientFn()
			out := outputFn()

			if streamURL {
				out.Raw(api.ExecutionLogStreamURL(id))
				return nil
			}

			resp, err := api.GetExecutionLogs(cmd.Context(), id)
			if err != nil {
				return err
			}
			if out.jsonMode {
				return printData(out, resp)
			}

			var logs client.ExecutionLogs
			if err := resp.Decode(&logs); err != nil {
				return err
			}
			out.Raw(logs.Logs)
			if logs.Error != "" {
				out.Error(logs.Error)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&streamURL, "stream-url", false, "Print the SSE log stream URL instead of logs")

	return cmd
}

func newExecutionCancelCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel ID",
		Short: "Cancel a running execution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			resp, err := clientFn().CancelExecution(cmd.Context(), id)
			if err != nil {
				return err
			}

			printMessage(outputFn(), resp, fmt.Sprintf("Execution cancelled: %d", id))
			return nil
		},
	}
}

func newExecutionFilesCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "files ID",
		Short: "List files produced by an execution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			out := outputFn()

			resp, err := clientFn().GetExecutionFiles(cmd.Context(), id)
			if err != nil {
				return err
			}
			if out.jsonMode {
				return printData(out, resp)
			}

			var files client.ExecutionFiles
			if err := resp.Decode(&files); err != nil {
				return err
			}

			rows := make([][]string, len(files.Files))
			for i, f := range files.Files {
				rows[i] = []string{f.Path, formatSize(f.Size), formatBool(f.IsText), f.ModifiedTime}
			}
			out.Table([]string{"PATH", "SIZE", "TEXT", "MODIFIED"}, rows)
			out.Success(fmt.Sprintf("%d files, %s total", len(files.Files), formatSize(files.TotalSize)))
			return nil
		},
	}
}

func newExecutionFileURLCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "file-url ID PATH",
		Short: "Print the download URL of an execution file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			outputFn().Raw(clientFn().ExecutionFileURL(id, args[1]))
			return nil
		},
	}
}

func newExecutionPreviewCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "preview ID PATH",
		Short: "Preview an execution file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			resp, err := clientFn().PreviewExecutionFile(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}
			return printPreview(outputFn(), resp)
		},
	}
}

// printPreview выводит предпросмотр: текст как есть, листы Excel таблицами.
func printPreview(out *Output, resp *client.Response) error {
	if out.jsonMode {
		return printData(out, resp)
	}

	var p client.FilePreview
	if err := resp.Decode(&p); err != nil {
		return err
	}

	switch {
	case len(p.Sheets) > 0:
		for _, sheet := range p.Sheets {
			out.Success("Sheet: " + sheet.Name)
			if len(sheet.Rows) == 0 {
				continue
			}
			out.Table(sheet.Rows[0], sheet.Rows[1:])
		}
	case p.Type == "binary":
		out.Success("Binary file, " + formatSize(p.Size) + ": download it instead")
	default:
		out.Raw(p.Content)
	}
	return nil
}
