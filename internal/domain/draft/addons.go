package draft

import (
	"slices"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

// ToggleAddon переключает наличие дополнения в черновике.
// Дополнения, которых нет в каталоге, допускаются и не влияют на сумму.
func ToggleAddon(catalog *domain.CatalogSnapshot, current *BookingDraft, addonID string) (*BookingDraft, error) {
	ids := slices.Clone(current.state.AddonIDs)
	if pos := slices.Index(ids, addonID); pos >= 0 {
		ids = slices.Delete(ids, pos, pos+1)
	} else {
		ids = append(ids, addonID)
	}
	return ApplyPatch(catalog, current, Patch{AddonIDs: Set(ids)})
}
