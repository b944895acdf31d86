package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/eerla/pybenders-sub000/internal/services"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// Slot is one position in a profile: the scene role the manifest must
// supply, its nominal duration, and the fade lengths applied at render.
type Slot struct {
	Role     string  `yaml:"role"`
	Duration float64 `yaml:"duration"`
	FadeIn   float64 `yaml:"fade_in"`
	FadeOut  float64 `yaml:"fade_out"`
}

// Profile is an ordered scene recipe identified by a closed tag name.
type Profile struct {
	Name  string `yaml:"name"`
	Slots []Slot `yaml:"slots"`
}

// Catalog holds every known profile plus the subject identifiers reels are
// grouped under.
type Catalog struct {
	Subjects []string  `yaml:"subjects"`
	Profiles []Profile `yaml:"profiles"`
}

var (
	loadOnce sync.Once
	loaded   Catalog
	loadErr  error
)

// Load parses and validates the embedded catalog. The result is cached;
// repeated calls are cheap.
func Load() (Catalog, error) {
	loadOnce.Do(func() {
		if err := yaml.Unmarshal(embeddedCatalog, &loaded); err != nil {
			loadErr = services.Wrap(services.ErrConfiguration, "catalog", "load", "parse embedded catalog", err)
			return
		}
		loadErr = loaded.validate()
	})
	return loaded, loadErr
}

// Profile looks up a profile by name.
func (c Catalog) Profile(name string) (Profile, bool) {
	for _, profile := range c.Profiles {
		if profile.Name == name {
			return profile, true
		}
	}
	return Profile{}, false
}

// ProfileNames returns the profile names in catalog order.
func (c Catalog) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for _, profile := range c.Profiles {
		names = append(names, profile.Name)
	}
	return names
}

// IsKnownSubject reports whether reels may be grouped under the subject.
func (c Catalog) IsKnownSubject(subject string) bool {
	for _, known := range c.Subjects {
		if known == subject {
			return true
		}
	}
	return false
}

func (c Catalog) validate() error {
	if len(c.Subjects) == 0 {
		return invalidCatalog("no subjects declared")
	}
	seenSubjects := make(map[string]bool, len(c.Subjects))
	for _, subject := range c.Subjects {
		if subject == "" {
			return invalidCatalog("empty subject identifier")
		}
		if seenSubjects[subject] {
			return invalidCatalog(fmt.Sprintf("duplicate subject %q", subject))
		}
		seenSubjects[subject] = true
	}

	if len(c.Profiles) == 0 {
		return invalidCatalog("no profiles declared")
	}
	seenProfiles := make(map[string]bool, len(c.Profiles))
	for _, profile := range c.Profiles {
		if profile.Name == "" {
			return invalidCatalog("profile with empty name")
		}
		if seenProfiles[profile.Name] {
			return invalidCatalog(fmt.Sprintf("duplicate profile %q", profile.Name))
		}
		seenProfiles[profile.Name] = true
		if err := profile.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (p Profile) validate() error {
	if len(p.Slots) == 0 {
		return invalidCatalog(fmt.Sprintf("profile %q has no slots", p.Name))
	}
	seenRoles := make(map[string]bool, len(p.Slots))
	for i, slot := range p.Slots {
		if slot.Role == "" {
			return invalidCatalog(fmt.Sprintf("profile %q slot %d has no role", p.Name, i))
		}
		if seenRoles[slot.Role] {
			return invalidCatalog(fmt.Sprintf("profile %q repeats role %q", p.Name, slot.Role))
		}
		seenRoles[slot.Role] = true
		if slot.Duration <= 0 {
			return invalidCatalog(fmt.Sprintf("profile %q role %q duration %.3fs must be positive", p.Name, slot.Role, slot.Duration))
		}
		if slot.FadeIn < 0 || slot.FadeOut < 0 {
			return invalidCatalog(fmt.Sprintf("profile %q role %q has negative fade", p.Name, slot.Role))
		}
		if slot.FadeIn+slot.FadeOut > slot.Duration {
			return invalidCatalog(fmt.Sprintf("profile %q role %q fades exceed the slot span", p.Name, slot.Role))
		}
		if slot.Role == countdownRole && !sameSpan(slot.Duration, CountdownSpan()) {
			return invalidCatalog(fmt.Sprintf("profile %q countdown span %.3fs must be %.3fs", p.Name, slot.Duration, CountdownSpan()))
		}
	}
	return nil
}

func invalidCatalog(message string) error {
	return services.Wrap(services.ErrConfiguration, "catalog", "load", message, nil)
}
