// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package dataset

// SampleFile returns the built-in demonstration catalog in file form.
func SampleFile() *File {
	return &File{
		Users: []UserRecord{
			{ID: 1, Name: "Alice", Location: "New York", Device: "mobile"},
			{ID: 2, Name: "Bob", Location: "Los Angeles", Device: "desktop"},
			{ID: 3, Name: "Charlie", Location: "Chicago", Device: "mobile"},
			{ID: 4, Name: "Diana", Location: "San Francisco", Device: "desktop"},
			{ID: 5, Name: "Mary", Location: "San Francisco", Device: "desktop"},
		},
		Products: []ProductRecord{
			{ID: 101, Name: "Wireless Earbuds", Category: "Electronics", Tags: []string{"audio", "wireless", "Bluetooth"}, Rating: 4.5, DeviceSuitability: []string{"mobile", "tablet"}},
			{ID: 102, Name: "Smartphone Case", Category: "Accessories", Tags: []string{"phone", "protection", "case"}, Rating: 4.2, DeviceSuitability: []string{"mobile"}},
			{ID: 103, Name: "Yoga Mat", Category: "Fitness", Tags: []string{"exercise", "mat", "yoga"}, Rating: 4.7, DeviceSuitability: []string{"tablet"}},
			{ID: 104, Name: "Electric Toothbrush", Category: "Personal Care", Tags: []string{"hygiene", "electric", "toothbrush"}, Rating: 4.3, DeviceSuitability: []string{"mobile"}},
			{ID: 105, Name: "Laptop Stand", Category: "Office Supplies", Tags: []string{"work", "laptop", "stand"}, Rating: 4.6, DeviceSuitability: []string{"desktop"}},
		},
		Browsing: []BrowseRecord{
			{UserID: 1, ProductID: 101, Timestamp: "2025-03-04 10:00:00"},
			{UserID: 1, ProductID: 103, Timestamp: "2023-10-01 10:05:00"},
			{UserID: 2, ProductID: 102, Timestamp: "2025-03-04 11:30:00"},
			{UserID: 3, ProductID: 104, Timestamp: "2025-03-04 14:30:00"},
			{UserID: 4, ProductID: 105, Timestamp: "2025-03-04 16:30:00"},
		},
		Purchases: []PurchaseRecord{
			{UserID: 1, ProductID: 101, Quantity: 1, Timestamp: "2025-03-04 10:00:00"},
			{UserID: 2, ProductID: 105, Quantity: 2, Timestamp: "2025-03-04 12:00:00"},
			{UserID: 3, ProductID: 103, Quantity: 1, Timestamp: "2025-03-04 12:00:00"},
			{UserID: 4, ProductID: 101, Quantity: 1, Timestamp: "2025-03-04 12:00:00"},
		},
		Contexts: []ContextRecord{
			{Category: "Electronics", PeakDays: []string{"Friday", "Saturday"}, Season: "Holiday"},
			{Category: "Fitness", PeakDays: []string{"Monday", "Wednesday"}, Season: "Summer"},
			{Category: "Office Supplies", PeakDays: []string{"Tuesday", "Thursday"}, Season: "Back-to-School"},
			{Category: "Personal Care", PeakDays: []string{"Sunday"}, Season: "All Year"},
		},
	}
}

// Sample returns the built-in demonstration catalog. It panics only if the
// embedded records are inconsistent, which is a programming error.
func Sample() *Dataset {
	ds, err := New(SampleFile())
	if err != nil {
		panic("dataset: built-in sample is invalid: " + err.Error())
	}
	return ds
}
