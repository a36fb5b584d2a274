package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/samuelfneumann/gowalker/environment/humanoid"
)

func newSpecCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "spec",
		Short: "Print the observation and control vector layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.envConfig()
			if err != nil {
				return err
			}
			e, _, err := c.Create(a.logger)
			if err != nil {
				return err
			}
			action := e.ActionSpec()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "observation: %v values\n",
				e.ObservationSpec().Shape.Len())
			fmt.Fprintf(out, "control: %v values in [%v, %v]\n",
				action.Shape.Len(), action.LowerBound.AtVec(0),
				action.UpperBound.AtVec(0))
			fmt.Fprintf(out, "discount: %v\n",
				e.DiscountSpec().LowerBound.AtVec(0))
			fmt.Fprintf(out, "dt: %v\n\n",
				c.Physics.TimeStep*float64(c.Physics.FrameSkip))

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "index\tcontrol")
			for i := 0; i < humanoid.ActionLength; i++ {
				fmt.Fprintf(w, "%v\t%v\n", i, humanoid.ControlName(i))
			}
			return w.Flush()
		},
	}
}
