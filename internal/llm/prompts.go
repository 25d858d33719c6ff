package llm

import _ "embed"

var (
	//go:embed prompts/structure_v1.txt
	structurePromptV1 string
	//go:embed prompts/edit_v1.txt
	editPromptV1 string
	//go:embed prompts/tailor_v1.txt
	tailorPromptV1 string
)

// StructurePrompt returns the prompt used to structure raw resume text.
func StructurePrompt() string { return structurePromptV1 }

// EditPrompt returns the prompt used for conversational edit turns.
func EditPrompt() string { return editPromptV1 }

// TailorPrompt returns the prompt used for job-targeted tailoring.
func TailorPrompt() string { return tailorPromptV1 }
