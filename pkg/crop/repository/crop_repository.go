package repository

import "soilai/entities"

type CropRepository interface {
	All() ([]entities.CropProfileRecord, error)
	Upsert(recs []entities.CropProfileRecord) error
	Count() (int64, error)
}
