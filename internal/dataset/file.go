// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// File is the on-disk representation of a dataset.
type File struct {
	Users     []UserRecord     `json:"users" yaml:"users" validate:"dive"`
	Products  []ProductRecord  `json:"products" yaml:"products" validate:"dive"`
	Browsing  []BrowseRecord   `json:"browsing" yaml:"browsing" validate:"dive"`
	Purchases []PurchaseRecord `json:"purchases" yaml:"purchases" validate:"dive"`
	Contexts  []ContextRecord  `json:"contexts" yaml:"contexts" validate:"dive"`
}

// UserRecord is a user as stored in a dataset file.
type UserRecord struct {
	ID       int    `json:"id" yaml:"id" validate:"gt=0"`
	Name     string `json:"name" yaml:"name" validate:"required"`
	Location string `json:"location" yaml:"location"`
	Device   string `json:"device" yaml:"device" validate:"required"`
}

// ProductRecord is a product as stored in a dataset file.
type ProductRecord struct {
	ID                int      `json:"id" yaml:"id" validate:"gt=0"`
	Name              string   `json:"name" yaml:"name" validate:"required"`
	Category          string   `json:"category" yaml:"category" validate:"required"`
	Tags              []string `json:"tags" yaml:"tags" validate:"dive,required"`
	Rating            float64  `json:"rating" yaml:"rating" validate:"gte=0,lte=5"`
	DeviceSuitability []string `json:"device_suitability" yaml:"device_suitability" validate:"dive,required"`
}

// BrowseRecord is a browse event as stored in a dataset file.
type BrowseRecord struct {
	UserID    int    `json:"user_id" yaml:"user_id" validate:"gt=0"`
	ProductID int    `json:"product_id" yaml:"product_id" validate:"gt=0"`
	Timestamp string `json:"timestamp" yaml:"timestamp" validate:"required,timestamp"`
}

// PurchaseRecord is a purchase as stored in a dataset file.
type PurchaseRecord struct {
	UserID    int    `json:"user_id" yaml:"user_id" validate:"gt=0"`
	ProductID int    `json:"product_id" yaml:"product_id" validate:"gt=0"`
	Quantity  int    `json:"quantity" yaml:"quantity" validate:"gte=1"`
	Timestamp string `json:"timestamp" yaml:"timestamp" validate:"required,timestamp"`
}

// ContextRecord is a context signal as stored in a dataset file.
type ContextRecord struct {
	Category string   `json:"category" yaml:"category" validate:"required"`
	PeakDays []string `json:"peak_days" yaml:"peak_days" validate:"min=1,dive,weekday"`
	Season   string   `json:"season" yaml:"season" validate:"season"`
}

// Load reads a dataset from a .json, .yaml or .yml file and builds it.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	f, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("decode dataset %s: %w", path, err)
	}
	return New(f)
}

// Decode parses data in the format named by ext (".json", ".yaml" or ".yml").
func Decode(data []byte, ext string) (*File, error) {
	var f File
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", ext)
	}
	return &f, nil
}
