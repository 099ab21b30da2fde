package domain

// RecommendationRequest is the JSON body accepted by the concierge endpoint
type RecommendationRequest struct {
	Preferences string `json:"preferences"`
}

// RecommendationResponse carries either generated advice or the fallback text;
// the two are indistinguishable by design of the contract
type RecommendationResponse struct {
	Recommendation string `json:"recommendation"`
}

// GenerationRequest is a single outbound text-generation call
type GenerationRequest struct {
	SystemInstruction string
	Prompt            string
	Temperature       float32
}
