package commands

import (
	"github.com/spf13/cobra"
)

type ActsCmd struct {
	env *Env
}

func NewActsCmd(env *Env) *cobra.Command {
	ac := &ActsCmd{env: env}
	return &cobra.Command{
		Use:   "acts",
		Short: "List the narrative acts",
		Args:  cobra.NoArgs,
		RunE:  ac.run,
	}
}

func (ac *ActsCmd) run(_ *cobra.Command, _ []string) error {
	return ac.env.Reporter.HandleActs(ac.env.Runner.Acts())
}

type ActCmd struct {
	env *Env
	all bool
}

func NewActCmd(env *Env) *cobra.Command {
	ac := &ActCmd{env: env}
	cmd := &cobra.Command{
		Use:   "act [name]",
		Short: "Render the panels of one act",
		Args: func(cmd *cobra.Command, args []string) error {
			if ac.all {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: ac.run,
	}

	cmd.Flags().BoolVar(&ac.all, "all", false, "Render every act in order")

	return cmd
}

func (ac *ActCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ds, err := ac.env.prepare(ctx)
	if err != nil {
		return err
	}

	names := args
	if ac.all {
		names = nil
		for _, info := range ac.env.Runner.Acts() {
			names = append(names, info.Name)
		}
	}

	for _, name := range names {
		report, err := ac.env.Runner.Run(ctx, ds, name)
		if err != nil {
			return err
		}
		if err := ac.env.Reporter.HandleAct(report); err != nil {
			return err
		}
	}
	return nil
}
