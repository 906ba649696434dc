package zipzones

// zoneConfig зона в yaml-справочнике
type zoneConfig struct {
	Key      string   `yaml:"key"`
	Prefixes []string `yaml:"prefixes"`
	Zips     []string `yaml:"zips"`
}

type referenceFile struct {
	Zones []zoneConfig `yaml:"zones"`
}
