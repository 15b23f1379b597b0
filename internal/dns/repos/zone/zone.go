// Package zone loads authoritative zones from YAML, JSON and TOML files.
// Record values are written in the same record grammar update scripts use, for example
//
//	zone_root: example.com
//	ttl: 600
//	www:
//	  A: ["192.0.2.1", "192.0.2.2"]
//	"@":
//	  MX: 10 mail.example.com.
//	  TXT: '"v=spf1 -all"'
//
// Nested maps (including dotted keys, which the loader splits) extend the owner name.
package zone

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"

	"github.com/haukened/rr-nsupdate/internal/dns/common/rrdata"
	"github.com/haukened/rr-nsupdate/internal/dns/common/utils"
	"github.com/haukened/rr-nsupdate/internal/dns/domain"
	"github.com/haukened/rr-nsupdate/internal/dns/nsupdate"
)

const (
	keyZoneRoot = "zone_root"
	keyTTL      = "ttl"
)

// LoadZoneDirectory walks the given directory, loading all supported zone files (YAML, JSON, TOML)
// and returning a map of zone roots to their records. Files with other extensions are ignored.
// Returns an error if any file fails to parse.
func LoadZoneDirectory(dir string, defaultTTL uint32) (map[string][]*domain.AuthoritativeRecord, error) {
	zones := make(map[string][]*domain.AuthoritativeRecord)

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		zoneRoot, zoneRecords, err := loadZoneFileWithRoot(path, defaultTTL)
		if err != nil {
			return fmt.Errorf("error parsing zone file %s: %w", path, err)
		}
		if zoneRoot != "" && len(zoneRecords) > 0 {
			zones[zoneRoot] = append(zones[zoneRoot], zoneRecords...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return zones, nil
}

// expandName returns the fully qualified domain name for a label, expanding '@' to the root,
// and appending the root if the label is not already absolute.
func expandName(label, root string) string {
	if label == "@" || label == "" {
		return root
	}
	if strings.HasSuffix(label, ".") {
		return label
	}
	return label + "." + root
}

// toStringValues converts a raw koanf-parsed value (string or []any of strings) into a slice of
// non-empty strings, skipping empty or non-string elements.
func toStringValues(val any) []string {
	switch v := val.(type) {
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		return []string{s}
	case []any:
		out := make([]string, 0, len(v))
		for _, elem := range v {
			s, ok := elem.(string)
			if !ok {
				continue
			}
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			out = append(out, s)
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return nil
	}
}

// buildRecords parses each value with the record grammar of the given type and
// encodes it into an authoritative record owned by fqdn.
func buildRecords(fqdn string, rrType string, values []string, ttl uint32) ([]*domain.AuthoritativeRecord, error) {
	rType := domain.RRTypeFromString(rrType)
	if rType == 0 {
		return nil, fmt.Errorf("unsupported record type %q", rrType)
	}
	records := make([]*domain.AuthoritativeRecord, 0, len(values))
	for _, s := range values {
		rd, prio, err := nsupdate.ParseRecord(rrType + " " + s)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", fqdn, rrType, err)
		}
		var priority uint16
		if prio != nil {
			priority = *prio
		}
		data, err := rrdata.Encode(rd, priority)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", fqdn, rrType, err)
		}
		rr, err := domain.NewAuthoritativeRecord(fqdn, rType, domain.RRClassIN, ttl, data)
		if err != nil {
			return nil, err
		}
		records = append(records, rr)
	}
	return records, nil
}

// walkNames collects the records below one owner label path. Keys are visited in sorted
// order so a file always yields its records in the same order.
func walkNames(raw map[string]any, label, root string, ttl uint32) ([]*domain.AuthoritativeRecord, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var records []*domain.AuthoritativeRecord
	for _, key := range keys {
		val := raw[key]
		if nested, ok := val.(map[string]any); ok {
			child := key
			if label != "" {
				child = label + "." + key
			}
			recs, err := walkNames(nested, child, root, ttl)
			if err != nil {
				return nil, err
			}
			records = append(records, recs...)
			continue
		}
		if label == "" {
			// top level scalars are file settings, not records
			continue
		}
		values := toStringValues(val)
		if len(values) == 0 {
			continue
		}
		fqdn := utils.CanonicalDNSName(expandName(label, root))
		recs, err := buildRecords(fqdn, key, values, ttl)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	return records, nil
}

// loadZoneFileWithRoot loads and parses a single zone file, returning both the zone root and records.
func loadZoneFileWithRoot(path string, defaultTTL uint32) (string, []*domain.AuthoritativeRecord, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	case ".toml":
		parser = toml.Parser()
	default:
		return "", nil, nil // unsupported file type
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return "", nil, fmt.Errorf("failed to load zone file %s: %w", path, err)
	}

	root := k.String(keyZoneRoot)
	if root == "" {
		return "", nil, fmt.Errorf("zone file %s missing '%s'", path, keyZoneRoot)
	}
	root = utils.CanonicalDNSName(root)

	ttl := defaultTTL
	if raw, ok := k.Raw()[keyTTL]; ok && !isMap(raw) {
		v := k.Int64(keyTTL)
		if v <= 0 || v > math.MaxInt32 {
			return "", nil, fmt.Errorf("zone file %s: ttl %d out of range", path, v)
		}
		ttl = uint32(v)
	}

	records, err := walkNames(k.Raw(), "", root, ttl)
	if err != nil {
		return "", nil, fmt.Errorf("invalid record in %s: %w", path, err)
	}
	return root, records, nil
}

func isMap(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}
