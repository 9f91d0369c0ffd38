// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/goccy/go-json"
)

// Fingerprint returns a stable hex digest of the catalog contents. Two
// datasets with the same records in the same order share a fingerprint.
func (ds *Dataset) Fingerprint() (string, error) {
	data, err := json.Marshal(struct {
		Users     []User          `json:"users"`
		Products  []Product       `json:"products"`
		Browsing  []BrowseEvent   `json:"browsing"`
		Purchases []Purchase      `json:"purchases"`
		Contexts  []ContextSignal `json:"contexts"`
	}{ds.users, ds.products, ds.browsing, ds.purchases, ds.contexts})
	if err != nil {
		return "", fmt.Errorf("fingerprint dataset: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
