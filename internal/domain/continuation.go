package domain

import "time"

// ContinuationVersion текущая версия схемы данных, переживающих redirect
const ContinuationVersion = 1

// ContinuationSnapshot данные черновика, которые должны пережить redirect identity gate.
// Записываются один раз при создании брони и читаются один раз при продолжении.
type ContinuationSnapshot struct {
	Version           int
	FlowID            string
	HoldID            string
	Client            ClientIntake
	AddonIDs          []string
	SpecialRequests   string
	FormResponses     map[string]string
	CustomFieldValues map[string]string
	Participants      []GroupParticipant
	CreatedAt         time.Time
}

// ContinuationKey ключ снапшота: префикс, flow и hold, чтобы чужой flow не прочитал данные
func ContinuationKey(prefix, flowID, holdID string) string {
	return prefix + ":" + flowID + ":" + holdID
}
