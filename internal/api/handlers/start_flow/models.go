package start_flow

import (
	"net/url"

	"github.com/m04kA/SMC-BookingFlow/internal/service/flow/models"
)

// Query параметры deep link
const (
	queryService  = "serviceId"
	queryStaff    = "staffId"
	queryLocation = "locationId"
	queryDate     = "date"
)

// DeepLinkFromQuery собирает предвыбор из query параметров ссылки на запись
func DeepLinkFromQuery(q url.Values) models.DeepLink {
	return models.DeepLink{
		ServiceID:  optional(q, queryService),
		StaffID:    optional(q, queryStaff),
		LocationID: optional(q, queryLocation),
		Date:       optional(q, queryDate),
	}
}

func optional(q url.Values, key string) *string {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	return &v
}
