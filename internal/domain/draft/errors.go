package draft

import (
	"errors"
	"fmt"
)

// ErrInvalidPatch базовая ошибка для всех отклоненных изменений черновика
var ErrInvalidPatch = errors.New("draft: invalid patch")

var (
	// ErrUnknownOffering услуга отсутствует в каталоге
	ErrUnknownOffering = fmt.Errorf("%w: unknown offering", ErrInvalidPatch)

	// ErrUnknownPackage пакет отсутствует в каталоге
	ErrUnknownPackage = fmt.Errorf("%w: unknown package", ErrInvalidPatch)

	// ErrUnknownLocation точка обслуживания отсутствует в каталоге
	ErrUnknownLocation = fmt.Errorf("%w: unknown location", ErrInvalidPatch)

	// ErrUnknownCategory категория отсутствует в каталоге
	ErrUnknownCategory = fmt.Errorf("%w: unknown category", ErrInvalidPatch)

	// ErrUnknownStaff мастер отсутствует в каталоге
	ErrUnknownStaff = fmt.Errorf("%w: unknown staff member", ErrInvalidPatch)

	// ErrUnknownResource ресурс отсутствует в каталоге
	ErrUnknownResource = fmt.Errorf("%w: unknown resource", ErrInvalidPatch)

	// ErrInvalidVenue неизвестный тип места оказания услуги
	ErrInvalidVenue = fmt.Errorf("%w: invalid venue type", ErrInvalidPatch)

	// ErrPackageAndServices в одном патче выбраны и пакет, и отдельные услуги
	ErrPackageAndServices = fmt.Errorf("%w: package and itemized services are mutually exclusive", ErrInvalidPatch)

	// ErrGroupBookingDisabled групповая запись выключена у провайдера
	ErrGroupBookingDisabled = fmt.Errorf("%w: group booking is disabled", ErrInvalidPatch)

	// ErrGroupLocationNotAllowed групповая запись недоступна в выбранной точке
	ErrGroupLocationNotAllowed = fmt.Errorf("%w: group booking is not available at this location", ErrInvalidPatch)

	// ErrNotGroupBooking операция с участниками вне группового режима
	ErrNotGroupBooking = fmt.Errorf("%w: draft is not a group booking", ErrInvalidPatch)

	// ErrGroupFull достигнут maxGroupSize
	ErrGroupFull = fmt.Errorf("%w: group is full", ErrInvalidPatch)

	// ErrParticipantNotFound участник с таким id не найден
	ErrParticipantNotFound = fmt.Errorf("%w: participant not found", ErrInvalidPatch)

	// ErrOfferingExcludedFromGroup услуга исключена из групповой записи
	ErrOfferingExcludedFromGroup = fmt.Errorf("%w: offering is excluded from group booking", ErrInvalidPatch)
)
