package engineconfig

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a partial tuning file (YAML), merges it over defaults and validates.
// KnownFields(true)로 오타/미사용 필드는 즉시 실패한다.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var p Partial
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return Config{}, fmt.Errorf("parse tuning file %s: %w", path, err)
	}

	return MergeAndValidate(p)
}

// Hash generates a deterministic SHA256 hash of a validated config.
// 캐시 키/감사 용도. struct → canonical JSON이라 재현성이 보장된다.
func Hash(cfg Config) (string, error) {
	jsonBytes, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}
