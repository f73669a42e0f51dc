package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cell "PouchCell/internal/calc/cell"
	"PouchCell/internal/calc/report"
	"PouchCell/internal/calc/workbook"
)

// designFlags binds one flag per input parameter plus --constants.
type designFlags struct {
	in        cell.Input
	constants string
}

func (f *designFlags) register(cmd *cobra.Command) {
	d := cell.DefaultInput()
	f.in = d
	fs := cmd.Flags()
	fs.Float64Var(&f.in.ArealCapacity, "areal-capacity", d.ArealCapacity, "cathode areal capacity (mAh/cm²)")
	fs.Float64Var(&f.in.CAMMassLoading, "cam-mass-loading", d.CAMMassLoading, "CAM mass loading per side (mg/cm²)")
	fs.Float64Var(&f.in.CAMWtPercent, "cam-wt-percent", d.CAMWtPercent, "CAM weight percentage (%)")
	fs.Float64Var(&f.in.LayerThickness, "layer-thickness", d.LayerThickness, "cathode layer thickness per side (µm)")
	fs.Float64Var(&f.in.MatThickness, "mat-thickness", d.MatThickness, "anode mat thickness (µm)")
	fs.Float64Var(&f.in.LiFoilThickness, "li-foil-thickness", d.LiFoilThickness, "Li foil thickness (µm)")
	fs.Float64Var(&f.in.PolymerWtSep, "polymer-wt-sep", d.PolymerWtSep, "separator polymer weight (%)")
	fs.Float64Var(&f.in.LiSaltWtSep, "li-salt-wt-sep", d.LiSaltWtSep, "separator Li salt weight (%)")
	fs.Float64Var(&f.in.CeramicWtSep, "ceramic-wt-sep", d.CeramicWtSep, "separator ceramic weight (%)")
	fs.Float64Var(&f.in.ThicknessSep, "thickness-sep", d.ThicknessSep, "separator thickness (µm)")
	fs.Float64Var(&f.in.PorositySep, "porosity-sep", d.PorositySep, "separator porosity (%)")
	fs.IntVar(&f.in.CellLayers, "cell-layers", d.CellLayers, "number of electrode-pair layers")
	fs.Float64Var(&f.in.CellVoltage, "cell-voltage", d.CellVoltage, "nominal cell voltage (V)")
	fs.Float64Var(&f.in.SingleLayerArea, "single-layer-area", d.SingleLayerArea, "area of one electrode layer (cm²)")
	fs.StringVar(&f.constants, "constants", "", "YAML file overriding the material constants")
}

func (f *designFlags) resolve() (cell.Input, cell.MaterialConstants, error) {
	c := cell.DefaultConstants()
	if f.constants != "" {
		var err error
		if c, err = cell.LoadConstants(f.constants); err != nil {
			return cell.Input{}, cell.MaterialConstants{}, err
		}
		logger.Debug("loaded material constants", zap.String("path", f.constants))
	}
	if err := f.in.Validate(); err != nil {
		return cell.Input{}, cell.MaterialConstants{}, err
	}
	return f.in, c, nil
}

func calcCmd() *cobra.Command {
	var (
		flags  designFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute capacity and energy densities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, c, err := flags.resolve()
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), format, cell.Evaluate(in, c))
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, csv or breakdown")
	return cmd
}

func reportCmd() *cobra.Command {
	var (
		flags designFlags
		out   string
		meta  report.Meta
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a PDF report of the design",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, c, err := flags.resolve()
			if err != nil {
				return err
			}
			b := cell.Evaluate(in, c)
			if err := b.Check(); err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := report.Render(f, meta, in, b, time.Now()); err != nil {
				return fmt.Errorf("render report: %w", err)
			}
			logger.Info("report written", zap.String("path", out))
			return f.Close()
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "cell-report.pdf", "output PDF path")
	cmd.Flags().StringVar(&meta.Project, "project", "", "project name")
	cmd.Flags().StringVar(&meta.Author, "author", "", "report author")
	cmd.Flags().StringVar(&meta.Title, "title", "", "report title")
	cmd.Flags().StringVar(&meta.Notes, "notes", "", "free text notes")
	return cmd
}

func workbookCmd() *cobra.Command {
	var (
		flags designFlags
		out   string
	)
	cmd := &cobra.Command{
		Use:   "workbook",
		Short: "Write an xlsx workbook with inputs, metrics chart and breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, c, err := flags.resolve()
			if err != nil {
				return err
			}
			b := cell.Evaluate(in, c)
			if err := b.Check(); err != nil {
				return err
			}
			f, err := workbook.Build(in, b)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := f.SaveAs(out); err != nil {
				return fmt.Errorf("save workbook: %w", err)
			}
			logger.Info("workbook written", zap.String("path", out))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "cell-design.xlsx", "output xlsx path")
	return cmd
}

func importCmd() *cobra.Command {
	var (
		constants string
		format    string
	)
	cmd := &cobra.Command{
		Use:   "import [workbook.xlsx]",
		Short: "Compute the scenario stored in a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cell.DefaultConstants()
			if constants != "" {
				var err error
				if c, err = cell.LoadConstants(constants); err != nil {
					return err
				}
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in, err := workbook.ParseScenario(f)
			if err != nil {
				return err
			}
			if err := in.Validate(); err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), format, cell.Evaluate(in, c))
		},
	}
	cmd.Flags().StringVar(&constants, "constants", "", "YAML file overriding the material constants")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, csv or breakdown")
	return cmd
}
