package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaiso/scriptdeck/internal/client"
)

// NewEnvironmentCmd создаёт группу команд для управления окружениями выполнения.
func NewEnvironmentCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "env",
		Aliases: []string{"environment"},
		Short:   "Manage execution environments",
	}

	cmd.AddCommand(
		newEnvListCmd(clientFn, outputFn),
		newEnvShowCmd(clientFn, outputFn),
		newEnvCreateCmd(clientFn, outputFn),
		newEnvUpdateCmd(clientFn, outputFn),
		newEnvDeleteCmd(clientFn, outputFn),
		newEnvSetDefaultCmd(clientFn, outputFn),
		newEnvDetectCmd(clientFn, outputFn),
	)

	return cmd
}

var envHeaders = []string{"ID", "NAME", "TYPE", "EXECUTABLE", "VERSION", "DEFAULT"}

func envRow(e client.Environment) []string {
	return []string{itoa(e.ID), e.Name, e.Type, e.ExecutablePath, e.Version, formatBool(e.IsDefault)}
}

func newEnvListCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List environments",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := clientFn().GetEnvironments(cmd.Context())
			if err != nil {
				return err
			}
			return printList(outputFn(), resp, envHeaders, envRow)
		},
	}
}

func newEnvShowCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show environment details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			resp, err := clientFn().GetEnvironment(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printOne(outputFn(), resp, envHeaders, envRow)
		},
	}
}

type envFlags struct {
	name           string
	envType        string
	executablePath string
	description    string
	isDefault      bool
}

func (f *envFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Environment name")
	cmd.Flags().StringVar(&f.envType, "type", "python", "Environment type (python, node, shell, ...)")
	cmd.Flags().StringVar(&f.executablePath, "executable", "", "Path to the interpreter")
	cmd.Flags().StringVar(&f.description, "description", "", "Description")
	cmd.Flags().BoolVar(&f.isDefault, "default", false, "Make this the default environment")
}

func (f *envFlags) request(cmd *cobra.Command, partial bool) client.EnvironmentRequest {
	set := func(name string) bool {
		return !partial || cmd.Flags().Changed(name)
	}

	var req client.EnvironmentRequest
	if set("name") {
		req.Name = f.name
	}
	if set("type") {
		req.Type = f.envType
	}
	if set("executable") {
		req.ExecutablePath = f.executablePath
	}
	if set("description") {
		req.Description = f.description
	}
	if cmd.Flags().Changed("default") {
		req.IsDefault = boolPtr(f.isDefault)
	}
	return req
}

func newEnvCreateCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	var f envFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register an environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn()

			resp, err := clientFn().CreateEnvironment(cmd.Context(), f.request(cmd, false))
			if err != nil {
				return err
			}

			printMessage(out, resp, "Environment created")
			return printOne(out, resp, envHeaders, envRow)
		},
	}

	f.register(cmd)
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("executable")

	return cmd
}

func newEnvUpdateCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	var f envFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update an environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			out := outputFn()

			resp, err := clientFn().UpdateEnvironment(cmd.Context(), id, f.request(cmd, true))
			if err != nil {
				return err
			}

			printMessage(out, resp, "Environment updated")
			return printOne(out, resp, envHeaders, envRow)
		},
	}

	f.register(cmd)

	return cmd
}

func newEnvDeleteCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			resp, err := clientFn().DeleteEnvironment(cmd.Context(), id)
			if err != nil {
				return err
			}

			printMessage(outputFn(), resp, fmt.Sprintf("Environment deleted: %d", id))
			return nil
		},
	}
}

func newEnvSetDefaultCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "set-default ID",
		Short: "Make an environment the default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			resp, err := clientFn().SetDefaultEnvironment(cmd.Context(), id)
			if err != nil {
				return err
			}

			printMessage(outputFn(), resp, fmt.Sprintf("Default environment: %d", id))
			return nil
		},
	}
}

func newEnvDetectCmd(clientFn func() *client.Client, outputFn func() *Output) *cobra.Command {
	var envType string
	var executablePath string

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect interpreter version on the backend host",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := clientFn().DetectEnvironment(cmd.Context(), client.EnvironmentRequest{
				Type:           envType,
				ExecutablePath: executablePath,
			})
			if err != nil {
				return err
			}
			return printData(outputFn(), resp)
		},
	}

	cmd.Flags().StringVar(&envType, "type", "python", "Environment type")
	cmd.Flags().StringVar(&executablePath, "executable", "", "Path to the interpreter (required)")
	cmd.MarkFlagRequired("executable")

	return cmd
}
