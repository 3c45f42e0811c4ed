package ai

import "fmt"

func translatePrompt(language string) string {
	return fmt.Sprintf(
		"You are a professional translator working in a telehealth consultation. "+
			"Translate the user's message into %s. Preserve meaning, tone and any "+
			"medical terminology. Reply with the translation only.",
		language,
	)
}

const quickAnswerPrompt = "You are assisting a healthcare provider in a " +
	"consultation chat. Based on the conversation, draft a short, professional " +
	"reply the provider could send to the client's last message. Reply with " +
	"the suggested answer only."
