// Package langpack loads scoring language packs from YAML files.
package langpack

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"jobezie-workers/internal/scoring"
)

// Load reads a YAML pack from path. An empty path returns the built-in
// English pack.
func Load(path string) (scoring.LanguagePack, error) {
	if path == "" {
		return scoring.English(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open language pack: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a YAML pack. Keys left out of the document keep their
// English values, so a pack can override just the lists it cares about.
func Decode(r io.Reader) (scoring.LanguagePack, error) {
	var overlay scoring.PackSpec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&overlay); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode language pack: %w", err)
	}

	pack, err := scoring.NewLanguagePack(Merge(scoring.EnglishSpec(), overlay))
	if err != nil {
		return nil, fmt.Errorf("compile language pack %q: %w", overlay.Name, err)
	}
	return pack, nil
}

// Merge overlays every non-empty field of overlay onto base.
func Merge(base, overlay scoring.PackSpec) scoring.PackSpec {
	out := base
	if overlay.Name != "" {
		out.Name = overlay.Name
	}
	lists := []struct {
		dst *[]string
		src []string
	}{
		{&out.ActionVerbs, overlay.ActionVerbs},
		{&out.MetricPatterns, overlay.MetricPatterns},
		{&out.CTAPatterns, overlay.CTAPatterns},
		{&out.ResultPatterns, overlay.ResultPatterns},
		{&out.SeniorityTerms, overlay.SeniorityTerms},
		{&out.ContactPatterns, overlay.ContactPatterns},
		{&out.ProfessionalPhrases, overlay.ProfessionalPhrases},
		{&out.CasualMarkers, overlay.CasualMarkers},
		{&out.FormalMarkers, overlay.FormalMarkers},
		{&out.DesperationMarkers, overlay.DesperationMarkers},
	}
	for _, l := range lists {
		if len(l.src) > 0 {
			*l.dst = l.src
		}
	}
	if overlay.DateRangePattern != "" {
		out.DateRangePattern = overlay.DateRangePattern
	}
	if overlay.BulletPattern != "" {
		out.BulletPattern = overlay.BulletPattern
	}

	if len(overlay.SectionHeaders) > 0 {
		headers := make(map[scoring.Section][]string, len(base.SectionHeaders))
		for k, v := range base.SectionHeaders {
			headers[k] = v
		}
		for k, v := range overlay.SectionHeaders {
			headers[k] = v
		}
		out.SectionHeaders = headers
	}
	if len(overlay.Personalization) > 0 {
		tags := make(map[scoring.PersonalizationTag][]string, len(base.Personalization))
		for k, v := range base.Personalization {
			tags[k] = v
		}
		for k, v := range overlay.Personalization {
			tags[k] = v
		}
		out.Personalization = tags
	}
	return out
}
