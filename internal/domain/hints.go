package domain

// Hint keys. A dismissed hint is never shown again until hints are reset.
const (
	HintIdeaTip      = "wizard.idea_tip"
	HintManualChoice = "wizard.manual_choice"
	HintReviewEdit   = "wizard.review_edit"
)

// Hints lists every known hint with its text.
var Hints = map[string]string{
	HintIdeaTip:      "Describe scope, team and timeline. The more context, the better the recommendation.",
	HintManualChoice: "Press tab to skip the AI assistant and pick a category yourself.",
	HintReviewEdit:   "Press esc to go back and edit any field before creating.",
}
