package zipzones

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed zones.yaml
var defaultZones []byte

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// Resolver справочник ZIP -> зона доставки
type Resolver struct {
	exact    map[string]string
	prefixes map[string]string
	maxLen   int
}

// LoadDefault загружает встроенный справочник
func LoadDefault() (*Resolver, error) {
	return Parse(defaultZones)
}

// LoadFile загружает справочник из файла; пустой путь - встроенный справочник
func LoadFile(path string) (*Resolver, error) {
	if path == "" {
		return LoadDefault()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrLoad, path, err)
	}
	return Parse(data)
}

// Parse разбирает yaml-справочник и проверяет отсутствие пересечений
func Parse(data []byte) (*Resolver, error) {
	var ref referenceFile
	if err := yaml.Unmarshal(data, &ref); err != nil {
		return nil, fmt.Errorf("%w: parse: %v", ErrLoad, err)
	}

	r := &Resolver{
		exact:    make(map[string]string),
		prefixes: make(map[string]string),
	}
	for _, z := range ref.Zones {
		if z.Key == "" {
			return nil, fmt.Errorf("%w: zone without key", ErrLoad)
		}
		for _, zip := range z.Zips {
			if len(zip) != 5 || !zipPattern.MatchString(zip) {
				return nil, fmt.Errorf("%w: zone %s: bad zip %q", ErrLoad, z.Key, zip)
			}
			if other, ok := r.exact[zip]; ok {
				return nil, fmt.Errorf("%w: zip %s mapped to both %s and %s", ErrLoad, zip, other, z.Key)
			}
			r.exact[zip] = z.Key
		}
		for _, p := range z.Prefixes {
			if p == "" || len(p) > 5 || strings.Trim(p, "0123456789") != "" {
				return nil, fmt.Errorf("%w: zone %s: bad prefix %q", ErrLoad, z.Key, p)
			}
			if other, ok := r.prefixes[p]; ok {
				return nil, fmt.Errorf("%w: prefix %s mapped to both %s and %s", ErrLoad, p, other, z.Key)
			}
			r.prefixes[p] = z.Key
			if len(p) > r.maxLen {
				r.maxLen = len(p)
			}
		}
	}
	return r, nil
}

// ValidateZip проверяет формат и возвращает пятизначную часть
func ValidateZip(zip string) (string, error) {
	zip = strings.TrimSpace(zip)
	if !zipPattern.MatchString(zip) {
		return "", fmt.Errorf("%w: %q", ErrInvalidZipFormat, zip)
	}
	return zip[:5], nil
}

// ZoneFor возвращает ключ зоны для ZIP
// Точное совпадение важнее префикса, более длинный префикс важнее короткого
func (r *Resolver) ZoneFor(zip string) (string, error) {
	zip5, err := ValidateZip(zip)
	if err != nil {
		return "", err
	}

	if key, ok := r.exact[zip5]; ok {
		return key, nil
	}
	for n := r.maxLen; n > 0; n-- {
		if key, ok := r.prefixes[zip5[:n]]; ok {
			return key, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownZone, zip5)
}
