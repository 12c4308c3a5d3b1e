package service

import (
	"context"

	"github.com/waxads/easy-grown/internal"
	"github.com/waxads/easy-grown/internal/storage"
)

type PlantingLogRequest struct {
	OwnerEmail           string `json:"ownerEmail" validate:"required"`
	VegetableID          int64  `json:"vegetableId"`
	VegetableName        string `json:"vegetableName"`
	Status               string `json:"status" validate:"required"`
	PlantedDate          string `json:"plantedDate" validate:"required"`
	ExpectedDate         string `json:"expectedDate"`
	Location             string `json:"location"`
	Notes                string `json:"notes"`
	WateringIntervalDays int    `json:"wateringIntervalDays" validate:"gte=0"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type WaterRequest struct {
	LastWateredDate string `json:"lastWateredDate" validate:"required"`
}

type PlantingLogQuery struct {
	Email string `form:"email" validate:"required"`
}

// NewPlantingLog builds a log whose last watered date starts at the planted date.
func NewPlantingLog(req *PlantingLogRequest) *internal.PlantingLog {
	return &internal.PlantingLog{
		UserEmail:            req.OwnerEmail,
		VegetableID:          req.VegetableID,
		VegetableName:        req.VegetableName,
		Status:               req.Status,
		PlantedDate:          req.PlantedDate,
		ExpectedDate:         req.ExpectedDate,
		Location:             req.Location,
		Notes:                req.Notes,
		WateringIntervalDays: req.WateringIntervalDays,
		LastWateredDate:      req.PlantedDate,
	}
}

func CreatePlantingLog(ctx context.Context, repo storage.PlantingLogRepository, req *PlantingLogRequest) (int64, error) {
	return repo.CreatePlantingLog(ctx, NewPlantingLog(req))
}
