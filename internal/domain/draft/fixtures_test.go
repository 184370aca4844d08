package draft

import (
	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/pkg/ptr"
)

func testCatalog() *domain.CatalogSnapshot {
	return &domain.CatalogSnapshot{
		ProviderID: "salon-1",
		Locations: []domain.Location{
			{ID: "loc-main", Name: "Main", IsPrimary: true, Kind: domain.LocationSalon},
			{ID: "loc-mall", Name: "Mall", Kind: domain.LocationSalon},
		},
		Categories: []domain.Category{{ID: "hair", Name: "Hair"}, {ID: "nails", Name: "Nails"}},
		Offerings: []domain.Offering{
			{ID: "cut", Title: "Cut", DurationMinutes: 60, Price: 350, Currency: "ZAR", CategoryID: ptr.Ptr("hair"), BufferMinutes: 10},
			{ID: "wash", Title: "Wash", DurationMinutes: 45, Price: 200, Currency: "ZAR", CategoryID: ptr.Ptr("hair"), BufferMinutes: 5},
			{ID: "mani", Title: "Manicure", DurationMinutes: 30, Price: 150, Currency: "ZAR", CategoryID: ptr.Ptr("nails"), SupportsAtHome: true, AtHomePriceAdjustment: 100},
			{ID: "color", Title: "Color", DurationMinutes: 90, Price: 700, Currency: "ZAR", CategoryID: ptr.Ptr("hair")},
		},
		VariantsByOffering: map[string][]domain.Offering{
			"cut": {{ID: "cut-long", Title: "Cut long hair", DurationMinutes: 75, Price: 420, Currency: "ZAR", ParentOfferingID: ptr.Ptr("cut")}},
		},
		Packages: []domain.Package{
			{ID: "pamper", Name: "Pamper", Price: 300, Currency: "ZAR", MemberOfferingIDs: []string{"wash", "mani"}},
		},
		Addons: []domain.Addon{
			{ID: "mask", OfferingID: "cut", Title: "Mask", Price: 50, Currency: "ZAR"},
			{ID: "oil", OfferingID: "cut", Title: "Oil", Price: 25, Currency: "ZAR"},
		},
		Staff:     []domain.Staff{{ID: "anna", Name: "Anna"}, {ID: "ben", Name: "Ben"}},
		Resources: []domain.Resource{{ID: "chair-1", Name: "Chair 1", Type: "chair"}},
		Settings: domain.Settings{
			StaffSelectionMode: domain.StaffClientChooses,
			RequireAuthStep:    domain.AuthAtCheckout,
			MaxAdvanceDays:     30,
		},
		GroupSettings: domain.GroupBookingSettings{
			Enabled:             true,
			MaxGroupSize:        3,
			ExcludedOfferingIDs: []string{"color"},
		},
	}
}
