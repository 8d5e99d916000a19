package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halfmoonliu/SaturationApp/internal/pipeline"
	"github.com/halfmoonliu/SaturationApp/internal/render"
)

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Print the expected CSV format with a worked example",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := render.DefaultStyles()
		fmt.Print(render.View(s, pipeline.Example(cfg.UnitLabel), 0))
		fmt.Println(s.Hint.Render(pipeline.FormatHint))
		return nil
	},
}
