package prompt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/longevity-genie/cell2sentence4longevity-mcp/apimodels"
	"github.com/longevity-genie/cell2sentence4longevity-mcp/internal/helpers"
)

var ErrNoGeneSentence = errors.New("prompt contains no gene sentence line")

// Parse extracts the gene sentence and metadata back out of a rendered
// prompt. It is the inverse of Build for the labeled lines, so a payload file
// holding a full prompt can drive the same prediction path as direct input.
func Parse(promptText string) (string, apimodels.Metadata, error) {
	var (
		geneSentence string
		meta         apimodels.Metadata
	)

	for _, line := range strings.Split(promptText, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, sexLabel):
			meta.Sex = helpers.Ptr(strings.TrimSpace(strings.TrimPrefix(line, sexLabel)))
		case strings.HasPrefix(line, smokingLabel):
			v, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, smokingLabel)))
			if err != nil {
				return "", apimodels.Metadata{}, fmt.Errorf("invalid smoking status line %q: %w", line, err)
			}
			meta.SmokingStatus = helpers.Ptr(v)
		case strings.HasPrefix(line, tissueLabel):
			meta.Tissue = helpers.Ptr(strings.TrimSpace(strings.TrimPrefix(line, tissueLabel)))
		case strings.HasPrefix(line, cellTypeLabel):
			meta.CellType = helpers.Ptr(strings.TrimSpace(strings.TrimPrefix(line, cellTypeLabel)))
		case strings.HasPrefix(line, sentenceLabel):
			geneSentence = strings.TrimSpace(strings.TrimPrefix(line, sentenceLabel))
		}
	}

	if geneSentence == "" {
		return "", apimodels.Metadata{}, ErrNoGeneSentence
	}
	return geneSentence, meta, nil
}
