package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shaiso/scriptdeck/internal/client"
)

// NewScheduleCmd создаёт группу команд для управления расписаниями.
func NewScheduleCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Manage schedules",
	}

	cmd.AddCommand(
		newScheduleListCmd(clientFn, outputFn),
		newScheduleShowCmd(clientFn, outputFn),
		newScheduleCreateCmd(clientFn, outputFn),
		newScheduleUpdateCmd(clientFn, outputFn),
		newScheduleDeleteCmd(clientFn, outputFn),
		newScheduleToggleCmd(clientFn, outputFn),
		newScheduleRunCmd(clientFn, outputFn),
		newScheduleNextCmd(outputFn),
	)

	return cmd
}

var scheduleHeaders = []string{"ID", "NAME", "SCRIPT", "CRON", "ENABLED", "LAST_RUN", "NEXT_RUN"}

func scheduleRow(s client.Schedule) []string {
	script := s.ScriptName
	if script == "" {
		script = itoa(s.ScriptID)
	}
	return []string{
		itoa(s.ID), s.Name, script, s.Cron, formatBool(s.Enabled), s.LastRun, s.NextRun,
	}
}

func newScheduleListCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List schedules",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := clientFn().GetSchedules(cmd.Context())
			if err != nil {
				return err
			}
			return printList(outputFn(), resp, scheduleHeaders, scheduleRow)
		},
	}
}

func newScheduleShowCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show schedule details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			resp, err := clientFn().GetSchedule(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printOne(outputFn(), resp, scheduleHeaders, scheduleRow)
		},
	}
}

// previewNextRun проверяет cron и сообщает ближайший запуск по локальному времени.
func previewNextRun(out *Output, cronExpr string) error {
	if err := ValidateCronExpr(cronExpr); err != nil {
		return err
	}
	runs, err := NextRuns(cronExpr, time.Now(), 1)
	if err != nil {
		return err
	}
	if len(runs) > 0 {
		out.Success("Next run: " + runs[0].Format(time.RFC3339))
	}
	return nil
}

func newScheduleCreateCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	var scriptID int
	var name string
	var description string
	var cronExpr string
	var params []string
	var disabled bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a schedule for a script",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()

			if err := previewNextRun(out, cronExpr); err != nil {
				return err
			}
			p, err := parseParams(params)
			if err != nil {
				return err
			}

			req := client.ScheduleRequest{
				ScriptID:    scriptID,
				Name:        name,
				Description: description,
				Cron:        cronExpr,
				Params:      p,
				Enabled:     boolPtr(!disabled),
			}

			resp, err := clientFn().CreateSchedule(cmd.Context(), req)
			if err != nil {
				return err
			}

			printMessage(out, resp, "Schedule created")
			return printOne(out, resp, scheduleHeaders, scheduleRow)
		},
	}

	cmd.Flags().IntVar(&scriptID, "script-id", 0, "Script ID (required)")
	cmd.Flags().StringVar(&name, "name", "", "Schedule name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&cronExpr, "cron", "", "Cron expression, 5 fields (e.g. '0 * * * *') (required)")
	cmd.Flags().StringArrayVar(&params, "param", nil, "Parameter as KEY=VALUE (repeatable)")
	cmd.Flags().BoolVar(&disabled, "disabled", false, "Create the schedule disabled")
	cmd.MarkFlagRequired("script-id")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("cron")

	return cmd
}

func newScheduleUpdateCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	var scriptID int
	var name string
	var description string
	var cronExpr string
	var params []string
	var enabled bool

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			out := outputFn()

			req := client.ScheduleRequest{}
			if cmd.Flags().Changed("script-id") {
				req.ScriptID = scriptID
			}
			if cmd.Flags().Changed("name") {
				req.Name = name
			}
			if cmd.Flags().Changed("description") {
				req.Description = description
			}
			if cmd.Flags().Changed("cron") {
				if err := previewNextRun(out, cronExpr); err != nil {
					return err
				}
				req.Cron = cronExpr
			}
			if cmd.Flags().Changed("param") {
				if req.Params, err = parseParams(params); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("enabled") {
				req.Enabled = boolPtr(enabled)
			}

			resp, err := clientFn().UpdateSchedule(cmd.Context(), id, req)
			if err != nil {
				return err
			}

			printMessage(out, resp, "Schedule updated")
			return printOne(out, resp, scheduleHeaders, scheduleRow)
		},
	}

	cmd.Flags().IntVar(&scriptID, "script-id", 0, "New script ID")
	cmd.Flags().StringVar(&name, "name", "", "New schedule name")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&cronExpr, "cron", "", "New cron expression")
	cmd.Flags().StringArrayVar(&params, "param", nil, "Parameter as KEY=VALUE (repeatable, replaces all)")
	cmd.Flags().BoolVar(&enabled, "enabled", true, "Enable or disable the schedule")

	return cmd
}

func newScheduleDeleteCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			resp, err := clientFn().DeleteSchedule(cmd.Context(), id)
			if err != nil {
				return err
			}

			printMessage(outputFn(), resp, fmt.Sprintf("Schedule deleted: %d", id))
			return nil
		},
	}
}

func newScheduleToggleCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: "Enable or disable a schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			resp, err := clientFn().ToggleSchedule(cmd.Context(), id)
			if err != nil {
				return err
			}

			printMessage(outputFn(), resp, fmt.Sprintf("Schedule toggled: %d", id))
			return nil
		},
	}
}

func newScheduleRunCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "run ID",
		Short: "Run a scheduled script now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			resp, err := clientFn().RunScheduleNow(cmd.Context(), id)
			if err != nil {
				return err
			}

			printMessage(outputFn(), resp, fmt.Sprintf("Schedule triggered: %d", id))
			return nil
		},
	}
}

// newScheduleNextCmd — локальный предпросмотр, без обращения к API.
func newScheduleNextCmd(outputFn func() *Output) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "next CRON",
		Short: "Preview upcoming run times of a cron expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()

			runs, err := NextRuns(args[0], time.Now(), count)
			if err != nil {
				return err
			}

			rows := make([][]string, len(runs))
			for i, r := range runs {
				rows[i] = []string{itoa(i + 1), r.Format(time.RFC3339)}
			}
			out.Print([]string{"#", "RUN_AT"}, rows, runs)
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 5, "Number of run times to show")

	return cmd
}
