package identitygate

// ChallengeRequest тело запроса на открытие проверки
type ChallengeRequest struct {
	FlowID      string  `json:"flowId"`
	HoldID      *string `json:"holdId,omitempty"`
	Email       string  `json:"email,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	CallbackURL string  `json:"callbackUrl"`
}

// ChallengeResponse открытая проверка
type ChallengeResponse struct {
	ChallengeID string `json:"challengeId"`
	URL         string `json:"url"`
}
