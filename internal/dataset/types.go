// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package dataset

import "time"

// User is a shopper.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Device   string `json:"device"`
}

// Product is a catalog item.
type Product struct {
	ID                int      `json:"id"`
	Name              string   `json:"name"`
	Category          string   `json:"category"`
	Tags              []string `json:"tags"`
	Rating            float64  `json:"rating"`
	DeviceSuitability []string `json:"device_suitability"`
}

// SuitsDevice reports whether device is in the product's suitability set.
func (p *Product) SuitsDevice(device string) bool {
	for _, d := range p.DeviceSuitability {
		if d == device {
			return true
		}
	}
	return false
}

// BrowseEvent records a product view.
type BrowseEvent struct {
	UserID    int       `json:"user_id"`
	ProductID int       `json:"product_id"`
	At        time.Time `json:"at"`
}

// Purchase records a completed order line.
type Purchase struct {
	UserID    int       `json:"user_id"`
	ProductID int       `json:"product_id"`
	Quantity  int       `json:"quantity"`
	At        time.Time `json:"at"`
}

// ContextSignal says when a category trends: on its peak days during its season.
type ContextSignal struct {
	Category string         `json:"category"`
	PeakDays []time.Weekday `json:"peak_days"`
	Season   string         `json:"season"`
}

// PeaksOn reports whether day is one of the signal's peak days.
func (c *ContextSignal) PeaksOn(day time.Weekday) bool {
	for _, d := range c.PeakDays {
		if d == day {
			return true
		}
	}
	return false
}
