package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shaiso/scriptdeck/internal/client"
	"github.com/shaiso/scriptdeck/internal/workflow"
)

// NewWorkflowCmd создаёт группу команд для управления workflow.
func NewWorkflowCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workflow",
		Aliases: []string{"wf"},
		Short:   "Manage workflows",
	}

	cmd.AddCommand(
		newWorkflowListCmd(clientFn, outputFn),
		newWorkflowShowCmd(clientFn, outputFn),
		newWorkflowCreateCmd(clientFn, outputFn),
		newWorkflowUpdateCmd(clientFn, outputFn),
		newWorkflowDeleteCmd(clientFn, outputFn),
		newWorkflowRunCmd(clientFn, outputFn),
		newWorkflowToggleCmd(clientFn, outputFn),
		newWorkflowValidateCmd(outputFn),
	)

	return cmd
}

var workflowHeaders = []string{"ID", "NAME", "NODES", "ENABLED", "UPDATED"}

func workflowRow(w client.Workflow) []string {
	return []string{itoa(w.ID), w.Name, itoa(w.NodesCount), formatBool(w.Enabled), w.UpdatedAt}
}

func newWorkflowListCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List workflows",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := clientFn().GetWorkflows(cmd.Context())
			if err != nil {
				return err
			}
			return printList(outputFn(), resp, workflowHeaders, workflowRow)
		},
	}
}

func newWorkflowShowCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show workflow details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			resp, err := clientFn().GetWorkflow(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printOne(outputFn(), resp, workflowHeaders, workflowRow)
		},
	}
}

// workflowBody читает определение workflow (JSON: name, description,
// nodes, edges, config) и применяет --name/--description поверх.
// Граф из узлов и рёбер проверяется локально, если он передан.
func workflowBody(cmd *cobra.Command, data, name, description string) (map[string]any, error) {
	body := map[string]any{}
	if data != "" {
		raw, err := readBody(data, os.ReadFile)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, fmt.Errorf("workflow definition must be a JSON object: %w", err)
		}
	}
	if cmd.Flags().Changed("name") {
		body["name"] = name
	}
	if cmd.Flags().Changed("description") {
		body["description"] = description
	}

	if skip, _ := cmd.Flags().GetBool("no-validate"); !skip {
		if err := checkGraph(body); err != nil {
			return nil, err
		}
	}
	return body, nil
}

// checkGraph проверяет nodes/edges тела. Черновик без узлов и рёбер допустим.
func checkGraph(body map[string]any) error {
	nodes, _ := body["nodes"].([]any)
	edges, _ := body["edges"].([]any)
	if len(nodes) == 0 && len(edges) == 0 {
		return nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal workflow: %w", err)
	}
	def, err := workflow.Parse(data)
	if err != nil {
		return err
	}
	if err := workflow.Validate(def); err != nil {
		return fmt.Errorf("invalid workflow: %w", err)
	}
	return nil
}

func newWorkflowCreateCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	var data, name, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a workflow from a JSON definition",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := workflowBody(cmd, data, name, description)
			if err != nil {
				return err
			}
			if body["name"] == nil {
				return fmt.Errorf("workflow name is required (--name or \"name\" in --data)")
			}
			out := outputFn()

			resp, err := clientFn().CreateWorkflow(cmd.Context(), body)
			if err != nil {
				return err
			}

			printMessage(out, resp, "Workflow created")
			return printOne(out, resp, workflowHeaders, workflowRow)
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "Workflow definition as JSON or @file")
	cmd.Flags().StringVar(&name, "name", "", "Workflow name")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().Bool("no-validate", false, "Skip local graph validation")

	return cmd
}

func newWorkflowUpdateCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	var data, name, description string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			body, err := workflowBody(cmd, data, name, description)
			if err != nil {
				return err
			}
			out := outputFn()

			resp, err := clientFn().UpdateWorkflow(cmd.Context(), id, body)
			if err != nil {
				return err
			}

			printMessage(out, resp, "Workflow updated")
			return printOne(out, resp, workflowHeaders, workflowRow)
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "Workflow definition as JSON or @file")
	cmd.Flags().StringVar(&name, "name", "", "New workflow name")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().Bool("no-validate", false, "Skip local graph validation")

	return cmd
}

func newWorkflowDeleteCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			resp, err := clientFn().DeleteWorkflow(cmd.Context(), id)
			if err != nil {
				return err
			}

			printMessage(outputFn(), resp, fmt.Sprintf("Workflow deleted: %d", id))
			return nil
		},
	}
}

func newWorkflowRunCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	var params []string

	cmd := &cobra.Command{
		Use:   "run ID",
		Short: "Execute a workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := parseParams(params)
			if err != nil {
				return err
			}
			out := outputFn()

			resp, err := clientFn().ExecuteWorkflow(cmd.Context(), id, p)
			if err != nil {
				return err
			}

			printMessage(out, resp, "Workflow started")
			return printOne(out, resp, wfExecHeaders, wfExecRow)
		},
	}

	cmd.Flags().StringArrayVar(&params, "param", nil, "Parameter as KEY=VALUE (repeatable)")

	return cmd
}

func newWorkflowToggleCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: "Enable or disable a workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			resp, err := clientFn().ToggleWorkflow(cmd.Context(), id)
			if err != nil {
				return err
			}

			printMessage(outputFn(), resp, fmt.Sprintf("Workflow toggled: %d", id))
			return nil
		},
	}
}

// newWorkflowValidateCmd — локальная проверка определения, без обращения к API.
func newWorkflowValidateCmd(outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a workflow definition and print its execution order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			def, err := workflow.Parse(data)
			if err != nil {
				return err
			}
			g, err := workflow.BuildGraph(def)
			if err != nil {
				return fmt.Errorf("invalid workflow: %w", err)
			}

			out := outputFn()
			rows := make([][]string, len(g.Order))
			order := make([]string, len(g.Order))
			for i, n := range g.Order {
				deps := make([]string, len(n.DependsOn))
				for j, d := range n.DependsOn {
					deps[j] = d.ID
				}
				rows[i] = []string{itoa(i + 1), n.ID, n.Def.NodeType, strings.Join(deps, ",")}
				order[i] = n.ID
			}
			out.Print([]string{"#", "NODE", "TYPE", "DEPENDS_ON"}, rows, order)
			out.Success(fmt.Sprintf("Workflow is valid: %d nodes, %d entry", g.Size(), len(g.Entry)))
			return nil
		},
	}
}

// NewWorkflowExecutionCmd создаёт группу команд для выполнений workflow.
func NewWorkflowExecutionCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workflow-execution",
		Aliases: []string{"wfx"},
		Short:   "Inspect workflow executions",
	}

	cmd.AddCommand(
		newWfExecListCmd(clientFn, outputFn),
		newWfExecShowCmd(clientFn, outputFn),
		newWfExecCancelCmd(clientFn, outputFn),
	)

	return cmd
}

var wfExecHeaders = []string{"ID", "WORKFLOW", "STATUS", "STARTED", "FINISHED", "DURATION"}

func wfExecRow(e client.WorkflowExecution) []string {
	workflow := itoa(e.WorkflowID)
	if e.Workflow != nil && e.Workflow.Name != "" {
		workflow = e.Workflow.Name
	}
	duration := ""
	if e.Duration != nil {
		duration = fmt.Sprintf("%.1fs", *e.Duration)
	}
	return []string{itoa(e.ID), workflow, e.Status, e.StartTime, e.EndTime, duration}
}

func newWfExecListCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	var lf listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workflow executions",
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := lf.query()
			if err != nil {
				return err
			}

			resp, err := clientFn().GetWorkflowExecutions(cmd.Context(), query)
			if err != nil {
				return err
			}
			return printList(outputFn(), resp, wfExecHeaders, wfExecRow)
		},
	}

	lf.register(cmd)
	cmd.Flags().IntVar(&lf.workflowID, "workflow-id", 0, "Filter by workflow ID")
	cmd.Flags().StringVar(&lf.status, "status", "", "Filter by status")

	return cmd
}

func newWfExecShowCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	var streamURL bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show workflow execution details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			api := clientFn()
			out := outputFn()

			if streamURL {
				out.Raw(api.WorkflowExecutionStreamURL(id))
				return nil
			}

			resp, err := api.GetWorkflowExecution(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printOne(out, resp, wfExecHeaders, wfExecRow)
		},
	}

	cmd.Flags().BoolVar(&streamURL, "stream-url", false, "Print the SSE progress stream URL instead")

	return cmd
}

func newWfExecCancelCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel ID",
		Short: "Cancel a running workflow execution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			resp, err := clientFn().CancelWorkflowExecution(cmd.Context(), id)
			if err != nil {
				return err
			}

			printMessage(outputFn(), resp, fmt.Sprintf("Workflow execution cancelled: %d", id))
			return nil
		},
	}
}
