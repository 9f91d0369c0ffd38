// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package dataset

import (
	"errors"
	"fmt"

	"github.com/tomtom215/hybridrec/internal/validation"
)

// ErrIntegrity reports a dataset that is well-formed per record but
// inconsistent as a whole (duplicate ids, dangling references).
var ErrIntegrity = errors.New("dataset integrity")

// Dataset is a validated, indexed, read-only catalog. It is safe for
// concurrent readers.
type Dataset struct {
	users     []User
	products  []Product
	browsing  []BrowseEvent
	purchases []Purchase
	contexts  []ContextSignal

	userPos    map[int]int
	productPos map[int]int

	browsed      map[int][]int
	purchasedIDs map[int][]int
	purchasedSet map[int]map[int]struct{}
}

// New validates f and builds the indexes.
func New(f *File) (*Dataset, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil dataset", ErrIntegrity)
	}
	if verr := validation.ValidateStruct(f); verr != nil {
		return nil, fmt.Errorf("validate dataset: %w", verr)
	}

	ds := &Dataset{
		userPos:      make(map[int]int, len(f.Users)),
		productPos:   make(map[int]int, len(f.Products)),
		browsed:      make(map[int][]int),
		purchasedIDs: make(map[int][]int),
		purchasedSet: make(map[int]map[int]struct{}),
	}

	for _, r := range f.Users {
		if _, dup := ds.userPos[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate user id %d", ErrIntegrity, r.ID)
		}
		ds.userPos[r.ID] = len(ds.users)
		ds.users = append(ds.users, User{ID: r.ID, Name: r.Name, Location: r.Location, Device: r.Device})
	}

	for _, r := range f.Products {
		if _, dup := ds.productPos[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate product id %d", ErrIntegrity, r.ID)
		}
		ds.productPos[r.ID] = len(ds.products)
		ds.products = append(ds.products, Product{
			ID:                r.ID,
			Name:              r.Name,
			Category:          r.Category,
			Tags:              append([]string(nil), r.Tags...),
			Rating:            r.Rating,
			DeviceSuitability: append([]string(nil), r.DeviceSuitability...),
		})
	}

	for i, r := range f.Browsing {
		if err := ds.checkRefs("browsing", i, r.UserID, r.ProductID); err != nil {
			return nil, err
		}
		at, err := validation.ParseTimestamp(r.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("browsing[%d]: %w", i, err)
		}
		ds.browsing = append(ds.browsing, BrowseEvent{UserID: r.UserID, ProductID: r.ProductID, At: at})
		ds.browsed[r.UserID] = append(ds.browsed[r.UserID], r.ProductID)
	}

	for i, r := range f.Purchases {
		if err := ds.checkRefs("purchases", i, r.UserID, r.ProductID); err != nil {
			return nil, err
		}
		at, err := validation.ParseTimestamp(r.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("purchases[%d]: %w", i, err)
		}
		ds.purchases = append(ds.purchases, Purchase{UserID: r.UserID, ProductID: r.ProductID, Quantity: r.Quantity, At: at})

		set, ok := ds.purchasedSet[r.UserID]
		if !ok {
			set = make(map[int]struct{})
			ds.purchasedSet[r.UserID] = set
		}
		if _, seen := set[r.ProductID]; !seen {
			set[r.ProductID] = struct{}{}
			ds.purchasedIDs[r.UserID] = append(ds.purchasedIDs[r.UserID], r.ProductID)
		}
	}

	seenCategory := make(map[string]struct{}, len(f.Contexts))
	for i, r := range f.Contexts {
		if _, dup := seenCategory[r.Category]; dup {
			return nil, fmt.Errorf("%w: contexts[%d]: duplicate category %q", ErrIntegrity, i, r.Category)
		}
		seenCategory[r.Category] = struct{}{}

		sig := ContextSignal{Category: r.Category, Season: r.Season}
		for _, name := range r.PeakDays {
			day, err := validation.ParseWeekday(name)
			if err != nil {
				return nil, fmt.Errorf("contexts[%d]: %w", i, err)
			}
			sig.PeakDays = append(sig.PeakDays, day)
		}
		ds.contexts = append(ds.contexts, sig)
	}

	return ds, nil
}

func (ds *Dataset) checkRefs(section string, i, userID, productID int) error {
	if _, ok := ds.userPos[userID]; !ok {
		return fmt.Errorf("%w: %s[%d]: unknown user %d", ErrIntegrity, section, i, userID)
	}
	if _, ok := ds.productPos[productID]; !ok {
		return fmt.Errorf("%w: %s[%d]: unknown product %d", ErrIntegrity, section, i, productID)
	}
	return nil
}

// Users returns all users in enumeration order.
func (ds *Dataset) Users() []User { return ds.users }

// Products returns all products in enumeration order.
func (ds *Dataset) Products() []Product { return ds.products }

// Browsing returns all browse events in file order.
func (ds *Dataset) Browsing() []BrowseEvent { return ds.browsing }

// Purchases returns all purchases in file order.
func (ds *Dataset) Purchases() []Purchase { return ds.purchases }

// Contexts returns the context signals in file order.
func (ds *Dataset) Contexts() []ContextSignal { return ds.contexts }

// User looks up a user by id.
func (ds *Dataset) User(id int) (User, bool) {
	i, ok := ds.userPos[id]
	if !ok {
		return User{}, false
	}
	return ds.users[i], true
}

// Product looks up a product by id.
func (ds *Dataset) Product(id int) (Product, bool) {
	i, ok := ds.productPos[id]
	if !ok {
		return Product{}, false
	}
	return ds.products[i], true
}

// UserIndex returns the enumeration position of a user.
func (ds *Dataset) UserIndex(id int) (int, bool) {
	i, ok := ds.userPos[id]
	return i, ok
}

// ProductIndex returns the enumeration position of a product.
func (ds *Dataset) ProductIndex(id int) (int, bool) {
	i, ok := ds.productPos[id]
	return i, ok
}

// UserIDs returns user ids in enumeration order.
func (ds *Dataset) UserIDs() []int {
	ids := make([]int, len(ds.users))
	for i := range ds.users {
		ids[i] = ds.users[i].ID
	}
	return ids
}

// ProductIDs returns product ids in enumeration order.
func (ds *Dataset) ProductIDs() []int {
	ids := make([]int, len(ds.products))
	for i := range ds.products {
		ids[i] = ds.products[i].ID
	}
	return ids
}

// HasHistory reports whether the user has browsed or purchased anything.
// Unknown users have no history.
func (ds *Dataset) HasHistory(userID int) bool {
	return len(ds.browsed[userID]) > 0 || len(ds.purchasedIDs[userID]) > 0
}

// HasPurchased reports whether the user bought the product at least once.
func (ds *Dataset) HasPurchased(userID, productID int) bool {
	_, ok := ds.purchasedSet[userID][productID]
	return ok
}

// PurchasedProducts returns the distinct products a user bought, in first
// purchase order.
func (ds *Dataset) PurchasedProducts(userID int) []int {
	return ds.purchasedIDs[userID]
}

// InteractedProducts returns the distinct products a user browsed or
// purchased: browsed products first, then purchases, each in event order.
func (ds *Dataset) InteractedProducts(userID int) []int {
	seen := make(map[int]struct{})
	var out []int
	for _, ids := range [][]int{ds.browsed[userID], ds.purchasedIDs[userID]} {
		for _, id := range ids {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

// Len returns the number of users and products.
func (ds *Dataset) Len() (users, products int) {
	return len(ds.users), len(ds.products)
}
