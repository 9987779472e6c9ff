// Package crop holds the crop registry: the set of recognized crop names and the
// threshold profile of each crop. A registry is built once at start-up from the
// built-in layer plus any configured sources and is read-only afterwards, so it can be
// shared between goroutines without locking.
package crop

import (
	"slices"
	"strings"

	"soilai/entities"
)

// Overlay is one layer of crop names and partial profiles. Layers are applied in order;
// a later layer wins field by field.
type Overlay struct {
	Name     string
	Crops    []string
	Profiles map[string]entities.ProfileOverride
}

// Empty reports whether the overlay contributes nothing.
func (o Overlay) Empty() bool { return len(o.Crops) == 0 && len(o.Profiles) == 0 }

type Registry struct {
	names    []string // sorted, normalized
	known    map[string]struct{}
	profiles map[string]entities.CropProfile
	def      entities.CropProfile
}

// Normalize is the matching form of a crop name.
func Normalize(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

// NewRegistry builds a registry from the built-in layer followed by overlays.
func NewRegistry(overlays ...Overlay) *Registry {
	layers := append([]Overlay{Builtin()}, overlays...)

	def := builtinDefaultProfile()
	for _, l := range layers {
		for k, o := range l.Profiles {
			if Normalize(k) == entities.DefaultProfileName {
				def = applyOverride(def, o)
			}
		}
	}

	known := map[string]struct{}{}
	merged := map[string]entities.ProfileOverride{}
	for _, l := range layers {
		for _, c := range l.Crops {
			if n := Normalize(c); n != "" && n != entities.DefaultProfileName {
				known[n] = struct{}{}
			}
		}
		for k, o := range l.Profiles {
			n := Normalize(k)
			if n == "" || n == entities.DefaultProfileName {
				continue
			}
			known[n] = struct{}{}
			merged[n] = mergeOverride(merged[n], o)
		}
	}

	profiles := make(map[string]entities.CropProfile, len(merged))
	for n, o := range merged {
		p := applyOverride(def, o)
		p.Name = n
		profiles[n] = p
	}

	names := make([]string, 0, len(known))
	for n := range known {
		names = append(names, n)
	}
	slices.Sort(names)

	return &Registry{names: names, known: known, profiles: profiles, def: def}
}

// Resolve maps a crop name to its profile. Unknown and blank names get the default
// profile, so the result is always usable.
func (r *Registry) Resolve(name string) entities.CropProfile {
	if p, ok := r.profiles[Normalize(name)]; ok {
		return cloneProfile(p)
	}
	return r.Default()
}

// Explicit reports whether name has its own profile rather than the default one.
func (r *Registry) Explicit(name string) bool {
	_, ok := r.profiles[Normalize(name)]
	return ok
}

// Profile is Resolve plus whether the profile was the crop's own.
func (r *Registry) Profile(name string) (entities.CropProfile, bool) {
	return r.Resolve(name), r.Explicit(name)
}

func (r *Registry) Default() entities.CropProfile { return cloneProfile(r.def) }

// Contains reports whether the normalized name is a registered crop.
func (r *Registry) Contains(name string) bool {
	_, ok := r.known[Normalize(name)]
	return ok
}

// Names returns all registered crop names in ascending order.
func (r *Registry) Names() []string { return slices.Clone(r.names) }

func (r *Registry) Len() int { return len(r.names) }

func cloneProfile(p entities.CropProfile) entities.CropProfile {
	if p.Potassium != nil {
		k := *p.Potassium
		p.Potassium = &k
	}
	return p
}

func mergeOverride(base, o entities.ProfileOverride) entities.ProfileOverride {
	if o.MoistureMin != nil {
		base.MoistureMin = o.MoistureMin
	}
	if o.NitrogenMin != nil {
		base.NitrogenMin = o.NitrogenMin
	}
	if o.NitrogenRecommendation != nil {
		base.NitrogenRecommendation = o.NitrogenRecommendation
	}
	if o.NitrogenRecommendationHindi != nil {
		base.NitrogenRecommendationHindi = o.NitrogenRecommendationHindi
	}
	if o.PotassiumMin != nil {
		base.PotassiumMin = o.PotassiumMin
	}
	if o.PotassiumRecommendation != nil {
		base.PotassiumRecommendation = o.PotassiumRecommendation
	}
	if o.PotassiumRecommendationHindi != nil {
		base.PotassiumRecommendationHindi = o.PotassiumRecommendationHindi
	}
	if o.PHMin != nil {
		base.PHMin = o.PHMin
	}
	if o.PHMax != nil {
		base.PHMax = o.PHMax
	}
	return base
}

// applyOverride fills a complete profile from base with the fields o sets.
func applyOverride(base entities.CropProfile, o entities.ProfileOverride) entities.CropProfile {
	p := cloneProfile(base)
	if o.MoistureMin != nil {
		p.Moisture.Min = *o.MoistureMin
	}
	if o.NitrogenMin != nil {
		p.Nitrogen.Min = *o.NitrogenMin
	}
	if o.NitrogenRecommendation != nil {
		p.Nitrogen.Recommendation = *o.NitrogenRecommendation
	}
	if o.NitrogenRecommendationHindi != nil {
		p.Nitrogen.RecommendationHindi = *o.NitrogenRecommendationHindi
	}
	if o.PotassiumMin != nil {
		if p.Potassium == nil {
			p.Potassium = &entities.NutrientThreshold{
				Recommendation:      defaultPotassiumRec,
				RecommendationHindi: defaultPotassiumRecHindi,
			}
		}
		p.Potassium.Min = *o.PotassiumMin
	}
	if p.Potassium != nil {
		if o.PotassiumRecommendation != nil {
			p.Potassium.Recommendation = *o.PotassiumRecommendation
		}
		if o.PotassiumRecommendationHindi != nil {
			p.Potassium.RecommendationHindi = *o.PotassiumRecommendationHindi
		}
	}
	if o.PHMin != nil {
		p.PH.Min = *o.PHMin
	}
	if o.PHMax != nil {
		p.PH.Max = *o.PHMax
	}
	return p
}
