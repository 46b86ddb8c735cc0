package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	sim "github.com/inference-sim/store-sim/sim"
)

var modelFormat string // Output format of the model command

// modelCmd prints the built-in transition model
var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Print the aisle transition and arrival weight tables",
	Run: func(cmd *cobra.Command, args []string) {
		if err := printModel(cmd.OutOrStdout(), modelFormat); err != nil {
			logrus.Fatalf("Failed to print model: %v", err)
		}
	},
}

// weightEntry is one (location, weight) pair in the YAML model document.
type weightEntry struct {
	Location string  `yaml:"location"`
	Weight   float64 `yaml:"weight"`
}

// modelDoc is the YAML layout of the model. Rows keep column order.
type modelDoc struct {
	Locations   []string                 `yaml:"locations"`
	Terminal    string                   `yaml:"terminal"`
	Transitions map[string][]weightEntry `yaml:"transitions"`
	Initial     []weightEntry            `yaml:"initial"`
}

func buildModelDoc() modelDoc {
	locs := sim.AllLocations()
	doc := modelDoc{
		Terminal:    string(sim.Checkout),
		Transitions: make(map[string][]weightEntry, len(locs)),
	}
	for _, from := range locs {
		doc.Locations = append(doc.Locations, string(from))
		row := sim.TransitionWeights(from)
		entries := make([]weightEntry, len(locs))
		for i, to := range locs {
			entries[i] = weightEntry{Location: string(to), Weight: row[i]}
		}
		doc.Transitions[string(from)] = entries
	}
	weights := sim.InitialWeights()
	for i, loc := range sim.InitialLocations() {
		doc.Initial = append(doc.Initial, weightEntry{Location: string(loc), Weight: weights[i]})
	}
	return doc
}

// printModel writes the weight tables as "text" or "yaml".
func printModel(w io.Writer, format string) error {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(buildModelDoc())
		if err != nil {
			return fmt.Errorf("encoding model: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "text", "":
		locs := sim.AllLocations()
		header := make([]string, len(locs))
		for i, l := range locs {
			header[i] = fmt.Sprintf("%10s", l)
		}
		fmt.Fprintf(w, "%-10s %s\n", "from\\to", strings.Join(header, " "))
		for _, from := range locs {
			row := sim.TransitionWeights(from)
			cells := make([]string, len(row))
			for i, v := range row {
				cells[i] = fmt.Sprintf("%10.4f", v)
			}
			fmt.Fprintf(w, "%-10s %s\n", from, strings.Join(cells, " "))
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "initial:")
		weights := sim.InitialWeights()
		for i, loc := range sim.InitialLocations() {
			fmt.Fprintf(w, "  %-8s %.4f\n", loc, weights[i])
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (valid: text, yaml)", format)
	}
}

func init() {
	modelCmd.Flags().StringVar(&modelFormat, "format", "text", "Output format (text, yaml)")
}
