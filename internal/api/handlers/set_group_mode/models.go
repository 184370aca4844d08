package set_group_mode

// SetGroupModeRequest включение групповой записи
type SetGroupModeRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}
