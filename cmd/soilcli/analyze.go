package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"soilai/entities"
	"soilai/pkg/ai"
	"soilai/pkg/analysis/serviceImp"
	"soilai/pkg/crop"
	"soilai/pkg/crop/catalog"
	"soilai/pkg/rules"
)

type numField struct {
	flag, label string
	dst         *float64
}

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		in       entities.ReadingInput
		asJSON   bool
		location string
		cropName string
	)
	fields := []numField{
		{"moisture", "Moisture %: ", &in.Moisture},
		{"nitrogen", "Nitrogen mg/kg: ", &in.Nitrogen},
		{"phosphorus", "Phosphorus mg/kg: ", &in.Phosphorus},
		{"potassium", "Potassium mg/kg: ", &in.Potassium},
		{"ph", "Soil pH: ", &in.PH},
		{"temperature", "Temperature °C: ", &in.Temperature},
		{"ec", "EC (dS/m): ", &in.ElectricalConductivity},
		{"organic-carbon", "Organic Carbon %: ", &in.OrganicCarbon},
	}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze one soil reading",
		Long:  "Analyze one soil reading. Values not given as flags are asked for on stdin.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(a.in, a.out)
			for _, f := range fields {
				if cmd.Flags().Changed(f.flag) {
					continue
				}
				v, err := p.number(f.label)
				if err != nil {
					return fmt.Errorf("%s: %w", f.flag, err)
				}
				*f.dst = v
			}
			var err error
			if !cmd.Flags().Changed("location") {
				if location, err = p.line("Location: "); err != nil {
					return fmt.Errorf("location: %w", err)
				}
			}
			if !cmd.Flags().Changed("crop") {
				if cropName, err = p.line("Crop: "); err != nil {
					return fmt.Errorf("crop: %w", err)
				}
			}

			cat := catalog.Load(a.cfg, a.logger)
			defer cat.Close()

			in.Location = location
			in.CropType, err = p.chooseCrop(crop.NewValidator(cat.Registry), cropName)
			if err != nil {
				return err
			}

			svc := serviceImp.NewAnalysisService(cat.Registry, rules.New(), ai.New(a.cfg, a.logger),
				serviceImp.WithLogger(a.logger))
			d := svc.Analyze(cmd.Context(), entities.NewSoilReading(in))

			if asJSON {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(d)
			}
			printDecision(a.out, d)
			return nil
		},
	}

	for _, f := range fields {
		cmd.Flags().Float64Var(f.dst, f.flag, 0, strings.TrimSuffix(f.label, ": "))
	}
	cmd.Flags().StringVar(&location, "location", "", "Location")
	cmd.Flags().StringVar(&cropName, "crop", "", "Crop")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the decision as JSON")
	return cmd
}

func printDecision(w io.Writer, d entities.AIDecision) {
	fmt.Fprintln(w, "\nRESULT")
	fmt.Fprintln(w, "Action:", d.Action)
	fmt.Fprintln(w, "Priority:", d.Priority)
	fmt.Fprintln(w, "Confidence:", strconv.FormatFloat(d.Confidence, 'f', 2, 64))
	fmt.Fprintln(w, "Reasoning:", d.Reasoning)
	fmt.Fprintln(w, "\nRecommendations:")
	for _, r := range d.Recommendations {
		fmt.Fprintln(w, " -", r)
	}
	fmt.Fprintln(w, "\nHindi Tips:")
	for _, r := range d.RecommendationsHindi {
		fmt.Fprintln(w, " -", r)
	}
	fmt.Fprintf(w, "\nNext Check in: %d hours\n", d.NextCheckHours)
	fmt.Fprintln(w, "Source:", d.Source)
}
