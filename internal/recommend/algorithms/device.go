// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package algorithms

import (
	"github.com/tomtom215/hybridrec/internal/recommend"
)

// DeviceSignal recommends products suited to the user's device.
type DeviceSignal struct {
	baseSignal
	catalog Catalog
}

// NewDeviceSignal creates the device_based signal.
func NewDeviceSignal(c Catalog) *DeviceSignal {
	return &DeviceSignal{
		baseSignal: baseSignal{source: recommend.SourceDevice},
		catalog:    c,
	}
}

// Recommend implements recommend.Signal.
func (s *DeviceSignal) Recommend(q recommend.Query) []int {
	user, ok := s.catalog.User(q.UserID)
	if !ok {
		return nil
	}
	var ids []int
	for _, p := range s.catalog.Products() {
		if p.SuitsDevice(user.Device) {
			ids = append(ids, p.ID)
		}
	}
	return unpurchased(s.catalog, q.UserID, ids, max(q.TopN, 0))
}
