// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package recommend

import (
	"fmt"
	"sort"
	"strings"
)

// DatasetFingerprintKey holds the fingerprint of the dataset the derived
// keys were computed from.
const DatasetFingerprintKey = "dataset_fingerprint"

// ProductFeatureKey caches a product feature vector.
func ProductFeatureKey(productID int) string {
	return fmt.Sprintf("product_feature:%d", productID)
}

// UserProfileKey caches a user profile vector.
func UserProfileKey(userID int) string {
	return fmt.Sprintf("user_profile:%d", userID)
}

// SVDFactorsKey caches latent factors for a matrix shape.
func SVDFactorsKey(rows, cols int) string {
	return fmt.Sprintf("svd_factors:%d:%d", rows, cols)
}

// RecommendationKey caches a fused list for a user and season set.
func RecommendationKey(userID int, seasons []string) string {
	return fmt.Sprintf("recommendations:%d:%s", userID, strings.Join(NormalizeSeasons(seasons), ","))
}

// UserRecommendationPattern matches every cached list of a user.
func UserRecommendationPattern(userID int) string {
	return fmt.Sprintf("recommendations:%d:*", userID)
}

// RecommendationPattern matches every cached list.
func RecommendationPattern() string { return "recommendations:*" }

// NormalizeSeasons trims, de-duplicates and sorts season labels so equal
// sets map to the same cache key. Blank labels are dropped.
func NormalizeSeasons(seasons []string) []string {
	seen := make(map[string]struct{}, len(seasons))
	out := make([]string, 0, len(seasons))
	for _, s := range seasons {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// DerivedKeyPatterns match every key written by the engine and its model
// builders.
func DerivedKeyPatterns() []string {
	return []string{
		"product_feature:*",
		"user_profile:*",
		"svd_factors:*",
		RecommendationPattern(),
	}
}
