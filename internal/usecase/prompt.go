package usecase

import (
	"fmt"

	"github.com/elevatedliving/storefront/internal/domain"
)

// DefaultTemperature favours varied but coherent phrasing
const DefaultTemperature float32 = 0.7

// ConciergePersona is the system instruction sent with every gift request
const ConciergePersona = "You are the head concierge at Elevated Living, a high-end home decor boutique. " +
	"You are elegant, sophisticated, and helpful."

const giftPromptTemplate = `User is looking for a luxury gift with these preferences: "%s".
Recommend 3 types of luxury home gifts (like 'Artisan Ceramics', 'Crystal Stemware', or 'Egyptian Cotton Linens')
and a brief reason why for each. Format the output as a friendly expert concierge.`

// BuildGiftPrompt interpolates the caller's raw text into the task template.
// The text is neither validated nor escaped.
func BuildGiftPrompt(preferences string) string {
	return fmt.Sprintf(giftPromptTemplate, preferences)
}

// BuildGiftRequest assembles the single outbound generation call
func BuildGiftRequest(preferences string, temperature float32) domain.GenerationRequest {
	return domain.GenerationRequest{
		SystemInstruction: ConciergePersona,
		Prompt:            BuildGiftPrompt(preferences),
		Temperature:       temperature,
	}
}
