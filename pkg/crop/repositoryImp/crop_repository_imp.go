package repositoryImp

import (
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"soilai/entities"
	"soilai/pkg/crop"
	"soilai/pkg/crop/repository"
)

type cropRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CropRepository { return &cropRepo{db} }

func (r *cropRepo) All() ([]entities.CropProfileRecord, error) {
	var out []entities.CropProfileRecord
	if err := r.db.Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *cropRepo) Upsert(recs []entities.CropProfileRecord) error {
	if len(recs) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&recs).Error
}

func (r *cropRepo) Count() (int64, error) {
	var n int64
	return n, r.db.Model(&entities.CropProfileRecord{}).Count(&n).Error
}

// Overlay reads every stored row as a registry layer.
func Overlay(repo repository.CropRepository) (crop.Overlay, error) {
	recs, err := repo.All()
	if err != nil {
		return crop.Overlay{}, err
	}
	ov := crop.Overlay{Name: "crop_db", Profiles: make(map[string]entities.ProfileOverride, len(recs))}
	for _, rec := range recs {
		ov.Crops = append(ov.Crops, rec.Name)
		if o := rec.Override(); !o.IsZero() {
			ov.Profiles[rec.Name] = o
		}
	}
	return ov, nil
}

// Records converts a source layer into rows for Upsert. Names are stored normalized.
func Records(ov crop.Overlay) []entities.CropProfileRecord {
	seen := map[string]int{}
	var out []entities.CropProfileRecord
	add := func(name string, o entities.ProfileOverride) {
		n := crop.Normalize(name)
		if n == "" {
			return
		}
		if i, ok := seen[n]; ok {
			out[i] = entities.NewCropProfileRecord(n, o)
			return
		}
		seen[n] = len(out)
		out = append(out, entities.NewCropProfileRecord(n, o))
	}
	for _, c := range ov.Crops {
		if _, ok := seen[crop.Normalize(c)]; !ok {
			add(c, entities.ProfileOverride{})
		}
	}
	for name, o := range ov.Profiles {
		add(name, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
