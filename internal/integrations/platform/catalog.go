package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

// catalogParts число независимых запросов каталога
const catalogParts = 10

// GetCatalog загружает каталог провайдера.
// Каждая часть каталога деградирует независимо: при ошибке она остается пустой,
// а в warnings появляется запись. Если не загрузилась ни одна часть, возвращается ErrCatalogUnavailable.
func (c *Client) GetCatalog(ctx context.Context, providerID string) (*domain.CatalogSnapshot, []string, error) {
	c.log.Info("Fetching catalog for provider=%s", providerID)

	base := "/providers/" + url.PathEscape(providerID)
	snapshot := &domain.CatalogSnapshot{
		ProviderID:         providerID,
		VariantsByOffering: map[string][]domain.Offering{},
		Settings: domain.Settings{
			StaffSelectionMode: domain.StaffAnyoneDefault,
			RequireAuthStep:    domain.AuthAtCheckout,
			DepositPolicy:      domain.DepositPolicy{Kind: domain.DepositNone},
		},
		GroupSettings: domain.GroupBookingSettings{MaxGroupSize: domain.DefaultMaxGroupSize},
	}

	var warnings []string
	failed := 0
	degrade := func(part string, err error) {
		failed++
		warnings = append(warnings, fmt.Sprintf("%s unavailable", part))
		c.log.Warn("Catalog part %s unavailable for provider=%s, applying graceful degradation: %v", part, providerID, err)
	}

	if locations, err := fetch[[]Location](ctx, c, base+"/locations"); err != nil {
		degrade("locations", err)
	} else {
		for _, l := range locations {
			snapshot.Locations = append(snapshot.Locations, domain.Location{
				ID: l.ID, Name: l.Name, Address: l.Address, IsPrimary: l.IsPrimary, Kind: domain.LocationKind(l.Kind),
			})
		}
	}

	if categories, err := fetch[[]Category](ctx, c, base+"/categories"); err != nil {
		degrade("categories", err)
	} else {
		for _, cat := range categories {
			snapshot.Categories = append(snapshot.Categories, domain.Category{ID: cat.ID, Name: cat.Name})
		}
	}

	if offerings, err := fetch[[]Offering](ctx, c, base+"/offerings"); err != nil {
		degrade("offerings", err)
	} else {
		for _, o := range offerings {
			snapshot.Offerings = append(snapshot.Offerings, o.toDomain())
		}
	}

	if variants, err := fetch[map[string][]Offering](ctx, c, base+"/offerings/variants"); err != nil {
		degrade("variants", err)
	} else {
		for parent, list := range variants {
			for _, v := range list {
				offering := v.toDomain()
				if offering.ParentOfferingID == nil {
					p := parent
					offering.ParentOfferingID = &p
				}
				snapshot.VariantsByOffering[parent] = append(snapshot.VariantsByOffering[parent], offering)
			}
		}
	}

	if packages, err := fetch[[]Package](ctx, c, base+"/packages"); err != nil {
		degrade("packages", err)
	} else {
		for _, p := range packages {
			snapshot.Packages = append(snapshot.Packages, domain.Package{
				ID: p.ID, Name: p.Name, Price: p.Price, Currency: p.Currency,
				DiscountPct: p.DiscountPct, MemberOfferingIDs: p.MemberOfferingIDs,
			})
		}
	}

	if addons, err := fetch[[]Addon](ctx, c, base+"/addons"); err != nil {
		degrade("addons", err)
	} else {
		for _, a := range addons {
			snapshot.Addons = append(snapshot.Addons, domain.Addon{
				ID: a.ID, OfferingID: a.OfferingID, Title: a.Title, Price: a.Price,
				DurationMinutes: a.DurationMinutes, Currency: a.Currency,
			})
		}
	}

	if staff, err := fetch[[]Staff](ctx, c, base+"/staff"); err != nil {
		degrade("staff", err)
	} else {
		for _, s := range staff {
			snapshot.Staff = append(snapshot.Staff, domain.Staff{ID: s.ID, Name: s.Name, Role: s.Role, Rating: s.Rating})
		}
	}

	if resources, err := fetch[[]Resource](ctx, c, base+"/resources"); err != nil {
		degrade("resources", err)
	} else {
		for _, r := range resources {
			snapshot.Resources = append(snapshot.Resources, domain.Resource{ID: r.ID, Name: r.Name, Type: r.Type})
		}
	}

	if settings, err := fetch[BookingSettings](ctx, c, base+"/booking-settings"); err != nil {
		degrade("settings", err)
	} else {
		snapshot.Settings = settings.toDomain()
	}

	if group, err := fetch[GroupBookingSettings](ctx, c, base+"/group-booking-settings"); err != nil {
		degrade("group settings", err)
	} else {
		snapshot.GroupSettings = domain.GroupBookingSettings{
			Enabled:             group.Enabled,
			MaxGroupSize:        group.MaxGroupSize,
			ExcludedOfferingIDs: group.ExcludedOfferingIDs,
			EnabledLocationIDs:  group.EnabledLocationIDs,
		}
	}

	if failed == catalogParts {
		c.log.Error("Catalog unavailable for provider=%s", providerID)
		return nil, warnings, fmt.Errorf("%w: provider=%s", ErrCatalogUnavailable, providerID)
	}

	c.log.Info("Successfully fetched catalog for provider=%s: %d offerings, %d packages, %d warnings",
		providerID, len(snapshot.Offerings), len(snapshot.Packages), len(warnings))
	return snapshot, warnings, nil
}

// fetch выполняет GET и разбирает JSON ответ
func fetch[T any](ctx context.Context, c *Client, path string) (T, error) {
	var out T

	resp, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return out, ErrNotFound
	default:
		return out, unexpectedStatus(resp)
	}

	if err := decode(resp, &out); err != nil {
		return out, err
	}
	return out, nil
}
