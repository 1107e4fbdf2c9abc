// Package prompt renders gene sentences into the exact text template the age
// prediction model was fine-tuned on, and parses that template back out of
// pre-built request payloads.
package prompt

import (
	"strconv"
	"strings"

	"github.com/longevity-genie/cell2sentence4longevity-mcp/apimodels"
)

const (
	preamble        = "The following is a list of aging related gene names ordered by descending expression level in a cell.\n"
	sentenceLabel   = "Aging related cell sentence: "
	instructionLine = "Predict the Age of the donor from whom these cells were taken."
	answerLine      = "Answer only with age value in years:"
	sexLabel        = "Sex: "
	smokingLabel    = "Smoking status: "
	tissueLabel     = "Tissue: "
	cellTypeLabel   = "Cell type: "
)

// Build renders the prompt for a gene sentence and optional metadata.
// Metadata fields appear in fixed order (sex, smoking status, tissue, cell
// type) and absent fields produce no line at all. Pure function: the same
// inputs always yield byte-identical output.
func Build(geneSentence string, meta apimodels.Metadata) string {
	parts := []string{preamble}

	if meta.Sex != nil && *meta.Sex != "" {
		parts = append(parts, sexLabel+*meta.Sex)
	}
	if meta.SmokingStatus != nil {
		parts = append(parts, smokingLabel+strconv.Itoa(*meta.SmokingStatus))
	}
	if meta.Tissue != nil && *meta.Tissue != "" {
		parts = append(parts, tissueLabel+*meta.Tissue)
	}
	if meta.CellType != nil && *meta.CellType != "" {
		parts = append(parts, cellTypeLabel+*meta.CellType)
	}

	parts = append(parts,
		sentenceLabel+geneSentence,
		instructionLine,
		answerLine,
	)

	return strings.Join(parts, "\n")
}
