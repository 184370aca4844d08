package domain

import "time"

// WaitlistRequest заявка в лист ожидания, когда подходящих слотов нет
type WaitlistRequest struct {
	ProviderID     string
	Name           string
	Email          string
	Phone          string
	OfferingIDs    []string
	StaffID        *string
	PreferredDate  time.Time
	PreferredStart *time.Time
	PreferredEnd   *time.Time
	Notes          string
}

// WaitlistEntry принятая заявка
type WaitlistEntry struct {
	ID        string
	CreatedAt time.Time
}
