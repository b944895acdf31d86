// Package manifest reads the scene manifest handed over by the image
// provider and writes the results manifest consumed by the publisher.
//
// Load performs structural validation only (shape, uniqueness, positive
// durations). Whether a subject or profile actually exists in the catalog
// is checked by the scheduler before any job starts.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/eerla/pybenders-sub000/internal/services"
)

// Scene is one entry in a question's scene list. Durations carry provider
// intent; fades always come from the profile catalog.
type Scene struct {
	Role            string  `json:"role"`
	ImagePath       string  `json:"image_path"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// Question describes one reel to render.
type Question struct {
	QuestionID     string  `json:"question_id"`
	Title          string  `json:"title,omitempty"`
	ContentProfile string  `json:"content_profile"`
	Scenes         []Scene `json:"scenes"`
}

// Document is a parsed scene manifest.
type Document struct {
	Subject     string     `json:"subject"`
	GeneratedAt time.Time  `json:"generated_at"`
	Questions   []Question `json:"questions"`

	// Path is where the manifest was loaded from.
	Path string `json:"-"`
}

// Load parses and structurally validates the scene manifest at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "manifest", "load", fmt.Sprintf("read %s", path), err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "manifest", "load", fmt.Sprintf("parse %s", path), err)
	}
	doc.Path = path

	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *Document) validate() error {
	if strings.TrimSpace(d.Subject) == "" {
		return invalidManifest("subject is required", nil)
	}
	if len(d.Questions) == 0 {
		return invalidManifest("manifest has no questions", nil)
	}

	seen := make(map[string]bool, len(d.Questions))
	for i, question := range d.Questions {
		where := fmt.Sprintf("question %d (%s)", i, question.QuestionID)
		if strings.TrimSpace(question.QuestionID) == "" {
			return invalidManifest(fmt.Sprintf("question %d has no question_id", i), nil)
		}
		if seen[question.QuestionID] {
			return invalidManifest(fmt.Sprintf("duplicate question_id %q", question.QuestionID), nil)
		}
		seen[question.QuestionID] = true

		if strings.TrimSpace(question.ContentProfile) == "" {
			return invalidManifest(where+" has no content_profile", nil)
		}
		if len(question.Scenes) == 0 {
			return invalidManifest(where+" has no scenes", nil)
		}
		for j, scene := range question.Scenes {
			if strings.TrimSpace(scene.Role) == "" {
				return invalidManifest(fmt.Sprintf("%s scene %d has no role", where, j), nil)
			}
			if strings.TrimSpace(scene.ImagePath) == "" {
				return invalidManifest(fmt.Sprintf("%s scene %q has no image_path", where, scene.Role), nil)
			}
			if scene.DurationSeconds <= 0 {
				return invalidManifest(fmt.Sprintf("%s scene %q duration must be positive", where, scene.Role), nil)
			}
		}
	}
	return nil
}

func invalidManifest(message string, err error) error {
	return services.Wrap(services.ErrConfiguration, "manifest", "load", message, err)
}

// ResultsPath derives the results manifest location from the scene manifest
// location: the extension is replaced by ".results.json" in the same
// directory, keeping the pair adjacent for the downstream publisher.
func ResultsPath(manifestPath string) string {
	base := strings.TrimSuffix(manifestPath, filepath.Ext(manifestPath))
	return base + ".results.json"
}
