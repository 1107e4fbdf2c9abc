package main

import (
	"github.com/spf13/cobra"

	"github.com/longevity-genie/cell2sentence4longevity-mcp/apimodels"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/helpers"
)

var (
	flagSex           string
	flagSmokingStatus int
	flagTissue        string
	flagCellType      string
	flagMaxTokens     int
	flagTemperature   float64
	flagTopP          float64
)

var runCmd = &cobra.Command{
	Use:   "run <gene-sentence>",
	Short: "Knock out the highest-expressed gene of a cell sentence",
	Long: `Predicts age from the given gene sentence, removes the first
(highest-expressed) gene, predicts again and reports the delta.

Example:
  knockout run "MT-CO1 FTL EEF1A1 HLA-B LST1" --sex female --tissue blood`,
	Args: cobra.ExactArgs(1),
	RunE: runKnockout,
}

func init() {
	runCmd.Flags().StringVar(&flagSex, "sex", "", "sex of the donor (e.g. 'male', 'female')")
	runCmd.Flags().IntVar(&flagSmokingStatus, "smoking-status", 0, "smoking status (0 = non-smoker, 1 = smoker)")
	runCmd.Flags().StringVar(&flagTissue, "tissue", "", "tissue type (e.g. 'blood', 'brain', 'liver')")
	runCmd.Flags().StringVar(&flagCellType, "cell-type", "", "cell type (e.g. 'CD14-low, CD16-positive monocyte')")
	runCmd.Flags().IntVar(&flagMaxTokens, "max-tokens", apimodels.DefaultMaxTokens, "maximum number of tokens to generate")
	runCmd.Flags().Float64Var(&flagTemperature, "temperature", 0, "sampling temperature")
	runCmd.Flags().Float64Var(&flagTopP, "top-p", apimodels.DefaultTopP, "nucleus sampling parameter")
}

func runKnockout(cmd *cobra.Command, args []string) error {
	orchestrator, closeLog, err := newOrchestrator()
	if err != nil {
		return err
	}
	defer closeLog()

	meta := apimodels.Metadata{}
	if flagSex != "" {
		meta.Sex = helpers.Ptr(flagSex)
	}
	if cmd.Flags().Changed("smoking-status") {
		meta.SmokingStatus = helpers.Ptr(flagSmokingStatus)
	}
	if flagTissue != "" {
		meta.Tissue = helpers.Ptr(flagTissue)
	}
	if flagCellType != "" {
		meta.CellType = helpers.Ptr(flagCellType)
	}

	params := apimodels.SamplingParams{
		MaxTokens:   flagMaxTokens,
		Temperature: flagTemperature,
		TopP:        flagTopP,
	}

	result, err := orchestrator.Knockout(cmd.Context(), args[0], meta, params)
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), flagOutputFormat, result)
}
