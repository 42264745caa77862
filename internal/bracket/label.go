package bracket

import "fmt"

// StageLabel names a stage by its distance from the final.
func StageLabel(stageIndex, totalStages int) string {
	switch totalStages - 1 - stageIndex {
	case 0:
		return "Final"
	case 1:
		return "Semi-Finals"
	case 2:
		return "Quarter-Finals"
	}
	return fmt.Sprintf("Round %d", stageIndex+1)
}
