package config

// CalendarConfig задает часовой пояс, в котором форматируются и сравниваются даты журнала.
type CalendarConfig struct {
	Timezone string `yaml:"timezone" env:"TRACKER_TIMEZONE" env-default:"UTC"`
}
