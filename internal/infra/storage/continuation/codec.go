package continuation

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

// record сериализованный вид снапшота
type record struct {
	Version           int                 `json:"version"`
	FlowID            string              `json:"flowId"`
	HoldID            string              `json:"holdId"`
	Client            clientRecord        `json:"client"`
	AddonIDs          []string            `json:"addonIds"`
	SpecialRequests   string              `json:"specialRequests,omitempty"`
	FormResponses     map[string]string   `json:"formResponses,omitempty"`
	CustomFieldValues map[string]string   `json:"customFieldValues,omitempty"`
	Participants      []participantRecord `json:"participants,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
}

type clientRecord struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type participantRecord struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      *string  `json:"email,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	ServiceIDs []string `json:"serviceIds"`
	Notes      *string  `json:"notes,omitempty"`
}

// Encode сериализует снапшот текущей версии
func Encode(s *domain.ContinuationSnapshot) ([]byte, error) {
	r := record{
		Version: domain.ContinuationVersion,
		FlowID:  s.FlowID,
		HoldID:  s.HoldID,
		Client: clientRecord{
			FirstName: s.Client.FirstName,
			LastName:  s.Client.LastName,
			Email:     s.Client.Email,
			Phone:     s.Client.Phone,
		},
		AddonIDs:          s.AddonIDs,
		SpecialRequests:   s.SpecialRequests,
		FormResponses:     s.FormResponses,
		CustomFieldValues: s.CustomFieldValues,
		CreatedAt:         s.CreatedAt,
	}
	for _, p := range s.Participants {
		r.Participants = append(r.Participants, participantRecord{
			ID: p.ID, Name: p.Name, Email: p.Email, Phone: p.Phone, ServiceIDs: p.ServiceIDs, Notes: p.Notes,
		})
	}

	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return data, nil
}

// Decode разбирает снапшот. Снапшоты другой версии отклоняются.
func Decode(data []byte) (*domain.ContinuationSnapshot, error) {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if r.Version != domain.ContinuationVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrUnsupportedVersion, r.Version, domain.ContinuationVersion)
	}

	s := &domain.ContinuationSnapshot{
		Version: r.Version,
		FlowID:  r.FlowID,
		HoldID:  r.HoldID,
		Client: domain.ClientIntake{
			FirstName:       r.Client.FirstName,
			LastName:        r.Client.LastName,
			Email:           r.Client.Email,
			Phone:           r.Client.Phone,
			SpecialRequests: r.SpecialRequests,
		},
		AddonIDs:          r.AddonIDs,
		SpecialRequests:   r.SpecialRequests,
		FormResponses:     r.FormResponses,
		CustomFieldValues: r.CustomFieldValues,
		CreatedAt:         r.CreatedAt,
	}
	for _, p := range r.Participants {
		s.Participants = append(s.Participants, domain.GroupParticipant{
			ID: p.ID, Name: p.Name, Email: p.Email, Phone: p.Phone, ServiceIDs: p.ServiceIDs, Notes: p.Notes,
		})
	}
	return s, nil
}
