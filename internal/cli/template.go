package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaiso/scriptdeck/internal/client"
)

// NewTemplateCmd создаёт группу команд для шаблонов workflow.
func NewTemplateCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage workflow templates",
	}

	cmd.AddCommand(
		newTemplateListCmd(clientFn, outputFn),
		newTemplateShowCmd(clientFn, outputFn),
		newTemplateCreateCmd(clientFn, outputFn),
		newTemplateUpdateCmd(clientFn, outputFn),
		newTemplateDeleteCmd(clientFn, outputFn),
		newTemplateUseCmd(clientFn, outputFn),
		newTemplateCategoriesCmd(clientFn, outputFn),
	)

	return cmd
}

var templateHeaders = []string{"ID", "NAME", "CATEGORY", "BUILTIN", "UPDATED"}

func templateRow(t client.WorkflowTemplate) []string {
	return []string{itoa(t.ID), t.Name, t.Category, formatBool(t.IsBuiltin), t.UpdatedAt}
}

func newTemplateListCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	var lf listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workflow templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := lf.query()
			if err != nil {
				return err
			}

			resp, err := clientFn().GetWorkflowTemplates(cmd.Context(), query)
			if err != nil {
				return err
			}
			return printList(outputFn(), resp, templateHeaders, templateRow)
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVar(&lf.category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&lf.search, "search", "", "Search by name")

	return cmd
}

func newTemplateShowCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show template details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			resp, err := clientFn().GetWorkflowTemplate(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printOne(outputFn(), resp, templateHeaders, templateRow)
		},
	}
}

type templateFlags struct {
	name        string
	description string
	category    string
	icon        string
	config      string
}

func (f *templateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Template name")
	cmd.Flags().StringVar(&f.description, "description", "", "Description")
	cmd.Flags().StringVar(&f.category, "category", "", "Category")
	cmd.Flags().StringVar(&f.icon, "icon", "", "Icon name")
	cmd.Flags().StringVar(&f.config, "config", "", "Template config (nodes, edges) as JSON or @file")
}

func (f *templateFlags) request(cmd *cobra.Command) (map[string]any, error) {
	body := map[string]any{}
	for flag, value := range map[string]string{
		"name":        f.name,
		"description": f.description,
		"category":    f.category,
		"icon":        f.icon,
	} {
		if cmd.Flags().Changed(flag) {
			body[flag] = value
		}
	}
	if f.config != "" {
		raw, err := readBody(f.config, os.ReadFile)
		if err != nil {
			return nil, err
		}
		body["template_config"] = raw
	}
	return body, nil
}

func newTemplateCreateCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	var f templateFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a workflow template",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := f.request(cmd)
			if err != nil {
				return err
			}
			out := outputFn()

			resp, err := clientFn().CreateWorkflowTemplate(cmd.Context(), body)
			if err != nil {
				return err
			}

			printMessage(out, resp, "Template created")
			return printOne(out, resp, templateHeaders, templateRow)
		},
	}

	f.register(cmd)
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("config")

	return cmd
}

func newTemplateUpdateCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	var f templateFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a workflow template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			body, err := f.request(cmd)
			if err != nil {
				return err
			}
			out := outputFn()

			resp, err := clientFn().UpdateWorkflowTemplate(cmd.Context(), id, body)
			if err != nil {
				return err
			}

			printMessage(out, resp, "Template updated")
			return printOne(out, resp, templateHeaders, templateRow)
		},
	}

	f.register(cmd)

	return cmd
}

func newTemplateDeleteCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a workflow template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			resp, err := clientFn().DeleteWorkflowTemplate(cmd.Context(), id)
			if err != nil {
				return err
			}

			printMessage(outputFn(), resp, fmt.Sprintf("Template deleted: %d", id))
			return nil
		},
	}
}

func newTemplateUseCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "use ID",
		Short: "Instantiate a template into a workflow definition",
		Long: `Instantiate a template. The backend returns a workflow definition
(name, description, nodes, edges) which is printed as JSON and can be fed
to "workflow create --data @file".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			body := map[string]any{}
			if cmd.Flags().Changed("name") {
				body["name"] = name
			}
			if cmd.Flags().Changed("description") {
				body["description"] = description
			}

			resp, err := clientFn().UseWorkflowTemplate(cmd.Context(), id, body)
			if err != nil {
				return err
			}
			return printData(outputFn(), resp)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name of the new workflow")
	cmd.Flags().StringVar(&description, "description", "", "Description of the new workflow")

	return cmd
}

func newTemplateCategoriesCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List template categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := clientFn().GetTemplateCategories(cmd.Context())
			if err != nil {
				return err
			}
			return printList(outputFn(), resp, []string{"CATEGORY"}, func(c string) []string {
				return []string{c}
			})
		},
	}
}
