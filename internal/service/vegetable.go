package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/waxads/easy-grown/internal"
	"github.com/waxads/easy-grown/internal/storage"
	"github.com/waxads/easy-grown/internal/upload"
)

// VegetableForm is the text part of a POST /vegetables multipart body.
type VegetableForm struct {
	Name        string   `form:"name"`
	HarvestTime string   `form:"harvestTime"`
	Water       []string `form:"water"`
	Sunlight    string   `form:"sunlight"`
	Months      string   `form:"months"`
	Regions     []string `form:"regions"`
	Description string   `form:"description"`
	Steps       []string `form:"steps"`
	MoreTips    []string `form:"moreTips"`
}

// ParseList turns the raw values of one list field into items. A single
// value holding a JSON array is decoded; other values are taken as items.
// Blank values are dropped.
func ParseList(values []string) ([]string, error) {
	if len(values) == 1 {
		v := strings.TrimSpace(values[0])
		if strings.HasPrefix(v, "[") {
			var items []string
			if err := json.Unmarshal([]byte(v), &items); err != nil {
				return nil, fmt.Errorf("%w: list is not a JSON array of strings", internal.ErrInvalidInput)
			}
			return nonBlank(items), nil
		}
	}
	return nonBlank(values), nil
}

func nonBlank(values []string) []string {
	items := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			items = append(items, v)
		}
	}
	return items
}

// NewVegetable builds the record for a form, normalizing its list fields.
func NewVegetable(form *VegetableForm, imageURL string) (*internal.Vegetable, error) {
	v := &internal.Vegetable{
		Name:        form.Name,
		HarvestTime: form.HarvestTime,
		Sunlight:    form.Sunlight,
		Months:      form.Months,
		ImageURL:    imageURL,
		Description: form.Description,
	}
	lists := []struct {
		name string
		raw  []string
		dst  *[]string
	}{
		{"water", form.Water, &v.Water},
		{"regions", form.Regions, &v.Regions},
		{"steps", form.Steps, &v.Steps},
		{"moreTips", form.MoreTips, &v.MoreTips},
	}
	for _, l := range lists {
		items, err := ParseList(l.raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", l.name, err)
		}
		*l.dst = items
	}
	return v, nil
}

func CreateVegetable(ctx context.Context, repo storage.VegetableRepository, form *VegetableForm, imageURL string) (int64, error) {
	v, err := NewVegetable(form, imageURL)
	if err != nil {
		return -1, err
	}
	return repo.CreateVegetable(ctx, v)
}

// ListVegetables returns the catalog with image references rewritten to
// their public path.
func ListVegetables(ctx context.Context, repo storage.VegetableRepository) ([]internal.Vegetable, error) {
	vegs, err := repo.ListVegetables(ctx)
	if err != nil {
		return nil, err
	}
	for i := range vegs {
		vegs[i].ImageURL = upload.PublicPath(vegs[i].ImageURL)
	}
	return vegs, nil
}
