// Package dataset loads the profile records the directory is seeded from.
package dataset

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"profile-directory/internal/domain"
)

//go:embed celebrities.json
var bundled []byte

// Bundled returns the profiles shipped with the binary, in source order
func Bundled() ([]domain.Profile, error) {
	return Decode(bundled)
}

// Load reads profiles from path, or the bundled dataset when path is empty
func Load(path string) ([]domain.Profile, error) {
	if path == "" {
		return Bundled()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read decodes a JSON array of profiles from r
func Read(r io.Reader) ([]domain.Profile, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return Decode(raw)
}

// Decode parses raw JSON and rejects duplicate ids
func Decode(raw []byte) ([]domain.Profile, error) {
	var profiles []domain.Profile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	seen := make(map[int]struct{}, len(profiles))
	for _, p := range profiles {
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("decode dataset: duplicate profile id %d", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return profiles, nil
}
