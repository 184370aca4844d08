package gate_callback

// SecretHeader заголовок с общим секретом identity gate
const SecretHeader = "X-Gate-Secret"

// GateCallbackRequest результат проверки личности от identity gate
type GateCallbackRequest struct {
	ChallengeID string `json:"challengeId" validate:"required"`
	Outcome     string `json:"outcome" validate:"required,oneof=verified not_verified abandoned"`
}
