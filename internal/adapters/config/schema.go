package config

// Planfile represents the structure of the taskmill.yaml plan file.
type Planfile struct {
	Version        string         `yaml:"version"`
	Catalog        CatalogDTO     `yaml:"catalog"`
	Order          map[string]int `yaml:"order"`
	Workers        []string       `yaml:"workers"`
	SlotMinutes    int            `yaml:"slot_minutes"`
	WorkdayMinutes int            `yaml:"workday_minutes"`
	Gating         string         `yaml:"gating"`
}

// CatalogDTO locates the task and worker catalogs.
type CatalogDTO struct {
	Driver   string `yaml:"driver"`
	Products string `yaml:"products"`
	Workers  string `yaml:"workers"`
	Database string `yaml:"database"`
}
