package fixture

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/calscribe/calscribe/internal/score"
)

// Sample is one discovered transcript with its validated sidecar.
type Sample struct {
	Name           string
	Category       string
	TranscriptPath string
	SidecarPath    string
	Sidecar        *Sidecar
}

// SidecarPath returns the sidecar path for a transcript path, replacing the
// .txt suffix with .expected.json.
func SidecarPath(transcriptPath string) string {
	return strings.TrimSuffix(transcriptPath, filepath.Ext(transcriptPath)) + ".expected.json"
}

// Load reads and validates a sidecar file, applying defaults for tolerance,
// owner and reference datetime.
func Load(path string) (*Sidecar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sidecar: %w", err)
	}

	var s Sidecar
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse sidecar %s: %w", path, err)
	}

	if s.Tolerance == "" {
		s.Tolerance = score.DefaultLevel
	}
	if s.Owner == "" {
		s.Owner = DefaultOwner
	}
	if s.ReferenceDatetime == "" {
		s.ReferenceDatetime = DefaultReferenceDatetime
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("invalid sidecar %s: %w", path, err)
	}

	return &s, nil
}

// Discover walks baseDir for .txt transcripts paired with a sibling
// .expected.json sidecar. Transcripts without a sidecar are skipped.
// Samples come back sorted by transcript path; the sample name is the
// slash-separated relative path without the extension, and the category
// falls back to the first path element when the sidecar leaves it empty.
func Discover(baseDir string) ([]Sample, error) {
	var samples []Sample

	err := filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".txt") {
			return nil
		}

		sidecarPath := SidecarPath(path)
		if _, err := os.Stat(sidecarPath); err != nil {
			return nil
		}

		sidecar, err := Load(sidecarPath)
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(baseDir, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)
		name := strings.TrimSuffix(rel, ".txt")

		category := sidecar.Category
		if category == "" {
			if i := strings.Index(rel, "/"); i > 0 {
				category = rel[:i]
			} else {
				category = "uncategorized"
			}
		}

		samples = append(samples, Sample{
			Name:           name,
			Category:       category,
			TranscriptPath: path,
			SidecarPath:    sidecarPath,
			Sidecar:        sidecar,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to discover samples in %s: %w", baseDir, err)
	}

	sort.Slice(samples, func(i, j int) bool {
		return samples[i].TranscriptPath < samples[j].TranscriptPath
	})
	return samples, nil
}
