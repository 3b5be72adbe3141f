package settings

// SystemSettings is the single-row portal configuration.
type SystemSettings struct {
	ID         int     `json:"id"`
	SystemName string  `json:"system_name"`
	LogoURL    *string `json:"logo_url,omitempty"`
	Language   string  `json:"language"`
	DateFormat string  `json:"date_format"`
	TimeFormat string  `json:"time_format"`
}
