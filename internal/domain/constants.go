package domain

// Значения по умолчанию для услуг, которые не удалось найти в каталоге.
// Консервативная длительность не даст выдать слот, в который услуга не помещается.
const (
	DefaultOfferingDurationMinutes = 60
	DefaultOfferingBufferMinutes   = 15
)

// DefaultCurrency валюта платформы, если у выбранных услуг она не указана
const DefaultCurrency = "ZAR"

// UnknownAddonPrice цена дополнения, отсутствующего в текущем каталоге
const UnknownAddonPrice = 0.0

// AnyStaff значение выбора мастера "без предпочтений"
const AnyStaff = "any"

// Next available search
const (
	NextAvailableMaxDays = 14
)

// Group booking
const (
	DefaultMaxGroupSize = 1
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
