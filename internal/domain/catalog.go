package domain

// LocationKind тип точки обслуживания провайдера
type LocationKind string

const (
	LocationSalon LocationKind = "salon"
	LocationBase  LocationKind = "base"
)

// StaffSelectionMode режим выбора мастера клиентом
type StaffSelectionMode string

const (
	StaffClientChooses    StaffSelectionMode = "client_chooses"
	StaffAnyoneDefault    StaffSelectionMode = "anyone_default"
	StaffHiddenAutoAssign StaffSelectionMode = "hidden_auto_assign"
)

// AuthStepPlacement когда запрашивается подтверждение личности
type AuthStepPlacement string

const (
	AuthAtCheckout          AuthStepPlacement = "checkout"
	AuthBeforeTimeSelection AuthStepPlacement = "before_time_selection"
)

// DepositKind тип политики предоплаты
type DepositKind string

const (
	DepositNone       DepositKind = "none"
	DepositPercentage DepositKind = "percentage"
	DepositFixed      DepositKind = "fixed"
)

// Location represents a provider service point
type Location struct {
	ID        string
	Name      string
	Address   string
	IsPrimary bool
	Kind      LocationKind
}

// Category represents a catalog category
type Category struct {
	ID   string
	Name string
}

// Offering represents a bookable service or a variant of one
type Offering struct {
	ID                    string
	Title                 string
	DurationMinutes       int
	Price                 float64
	Currency              string
	CategoryID            *string
	ParentOfferingID      *string // не nil для вариантов
	SupportsAtHome        bool
	AtHomePriceAdjustment float64
	BufferMinutes         int
	RequiredResourceTypes []string
}

// PriceFor возвращает цену услуги с учетом выезда на дом
func (o *Offering) PriceFor(venue VenueType) float64 {
	if venue == VenueAtHome {
		return o.Price + o.AtHomePriceAdjustment
	}
	return o.Price
}

// Package represents a bundle of offerings sold at a single price
type Package struct {
	ID                string
	Name              string
	Price             float64
	Currency          string
	DiscountPct       *float64
	MemberOfferingIDs []string
}

// Addon represents an optional extra attached to a primary offering
type Addon struct {
	ID              string
	OfferingID      string
	Title           string
	Price           float64
	DurationMinutes *int
	Currency        string
}

// Staff represents a provider team member
type Staff struct {
	ID     string
	Name   string
	Role   string
	Rating *float64
}

// Resource represents a bookable room, chair or device
type Resource struct {
	ID   string
	Name string
	Type string
}

// DepositPolicy политика предоплаты провайдера
type DepositPolicy struct {
	Kind   DepositKind
	Amount float64 // процент для percentage, сумма для fixed
}

// Due вычисляет сумму предоплаты от итоговой стоимости
func (p DepositPolicy) Due(total float64) float64 {
	switch p.Kind {
	case DepositPercentage:
		return total * p.Amount / 100
	case DepositFixed:
		if p.Amount > total {
			return total
		}
		return p.Amount
	default:
		return 0
	}
}

// Settings онлайн-записи провайдера
type Settings struct {
	StaffSelectionMode StaffSelectionMode
	RequireAuthStep    AuthStepPlacement
	MinNoticeMinutes   int
	MaxAdvanceDays     int
	DepositPolicy      DepositPolicy
	// Обязательные поля анкеты провайдера и кастомные поля (ключи)
	RequiredFormFields   []string
	RequiredCustomFields []string
}

// GroupBookingSettings настройки групповой записи
type GroupBookingSettings struct {
	Enabled             bool
	MaxGroupSize        int
	ExcludedOfferingIDs []string
	EnabledLocationIDs  []string // пусто = все точки
}

// AllowsOffering проверяет, что услуга не исключена из групповой записи
func (g GroupBookingSettings) AllowsOffering(offeringID string) bool {
	return !contains(g.ExcludedOfferingIDs, offeringID)
}

// AllowsLocation проверяет, что групповая запись доступна в точке
func (g GroupBookingSettings) AllowsLocation(locationID *string) bool {
	if len(g.EnabledLocationIDs) == 0 {
		return true
	}
	if locationID == nil {
		return false
	}
	return contains(g.EnabledLocationIDs, *locationID)
}

// CatalogSnapshot read model of a provider catalog, loaded once per flow.
// Snapshot must not be modified after load.
type CatalogSnapshot struct {
	ProviderID         string
	Locations          []Location
	Categories         []Category
	Offerings          []Offering
	VariantsByOffering map[string][]Offering
	Packages           []Package
	Addons             []Addon
	Staff              []Staff
	Resources          []Resource
	Settings           Settings
	GroupSettings      GroupBookingSettings
}

// Offering ищет услугу среди основных услуг и вариантов
func (c *CatalogSnapshot) Offering(id string) (*Offering, bool) {
	for i := range c.Offerings {
		if c.Offerings[i].ID == id {
			return &c.Offerings[i], true
		}
	}
	for _, variants := range c.VariantsByOffering {
		for i := range variants {
			if variants[i].ID == id {
				return &variants[i], true
			}
		}
	}
	return nil, false
}

func (c *CatalogSnapshot) Package(id string) (*Package, bool) {
	for i := range c.Packages {
		if c.Packages[i].ID == id {
			return &c.Packages[i], true
		}
	}
	return nil, false
}

func (c *CatalogSnapshot) Addon(id string) (*Addon, bool) {
	for i := range c.Addons {
		if c.Addons[i].ID == id {
			return &c.Addons[i], true
		}
	}
	return nil, false
}

func (c *CatalogSnapshot) Location(id string) (*Location, bool) {
	for i := range c.Locations {
		if c.Locations[i].ID == id {
			return &c.Locations[i], true
		}
	}
	return nil, false
}

func (c *CatalogSnapshot) StaffMember(id string) (*Staff, bool) {
	for i := range c.Staff {
		if c.Staff[i].ID == id {
			return &c.Staff[i], true
		}
	}
	return nil, false
}

func (c *CatalogSnapshot) Resource(id string) (*Resource, bool) {
	for i := range c.Resources {
		if c.Resources[i].ID == id {
			return &c.Resources[i], true
		}
	}
	return nil, false
}

func (c *CatalogSnapshot) HasCategory(id string) bool {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return true
		}
	}
	return false
}

// DefaultLocation возвращает основную точку, либо единственную, если основная не отмечена
func (c *CatalogSnapshot) DefaultLocation() (*Location, bool) {
	for i := range c.Locations {
		if c.Locations[i].IsPrimary {
			return &c.Locations[i], true
		}
	}
	if len(c.Locations) == 1 {
		return &c.Locations[0], true
	}
	return nil, false
}

// IsEmpty true, если в каталоге нет ни одной услуги и пакета
func (c *CatalogSnapshot) IsEmpty() bool {
	return len(c.Offerings) == 0 && len(c.Packages) == 0
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
