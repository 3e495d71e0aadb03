package commands

import (
	"github.com/de-tools/pulse-atlas/pkg/services/acts"
	"github.com/spf13/cobra"
)

type PersonaCmd struct {
	env *Env
}

func NewPersonaCmd(env *Env) *cobra.Command {
	pc := &PersonaCmd{env: env}
	return &cobra.Command{
		Use:   "persona <name>",
		Short: "Show the respondents matching a persona (at-risk, resilient)",
		Args:  cobra.ExactArgs(1),
		RunE:  pc.run,
	}
}

func (pc *PersonaCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ds, err := pc.env.prepare(ctx)
	if err != nil {
		return err
	}

	result, err := pc.env.Runner.Persona(ctx, ds, args[0])
	if err != nil {
		return err
	}
	return pc.env.Reporter.HandlePersona(result, acts.NoticeNoEmployees)
}
