// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package algorithms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/tomtom215/hybridrec/internal/cache"
	"github.com/tomtom215/hybridrec/internal/recommend"
)

var errNoConvergence = errors.New("svd factorization failed")

// Factors are the low-rank user and item factors of an interaction matrix.
type Factors struct {
	// Users is rows × Rank: U_k · Σ_k.
	Users *mat.Dense
	// Items is cols × Rank: V_k.
	Items *mat.Dense
	Rank  int
}

// ZeroFactors returns all-zero factors of the given shape.
func ZeroFactors(rows, cols, k int) *Factors {
	return &Factors{
		Users: mat.NewDense(rows, k, nil),
		Items: mat.NewDense(cols, k, nil),
		Rank:  k,
	}
}

// IsZero reports whether no latent signal is available.
func (f *Factors) IsZero() bool {
	return isZero(f.Users.RawMatrix().Data) && isZero(f.Items.RawMatrix().Data)
}

// BuildInteractionMatrix returns the implicit-feedback matrix: rows are
// users and columns products in catalog order, 1 where the user purchased
// the product. It returns nil when either dimension is empty.
func BuildInteractionMatrix(userIDs, productIDs []int, purchased func(userID, productID int) bool) *mat.Dense {
	if len(userIDs) == 0 || len(productIDs) == 0 {
		return nil
	}
	m := mat.NewDense(len(userIDs), len(productIDs), nil)
	for i, uid := range userIDs {
		for j, pid := range productIDs {
			if purchased(uid, pid) {
				m.Set(i, j, 1)
			}
		}
	}
	return m
}

// ClampRank bounds k by min(rows, cols) − 1.
func ClampRank(k, rows, cols int) (int, error) {
	limit := min(rows, cols) - 1
	if k > limit {
		k = limit
	}
	if k <= 0 {
		return 0, fmt.Errorf("%w: rank %d for a %d×%d matrix", recommend.ErrInvalidRank, k, rows, cols)
	}
	return k, nil
}

// Decompose computes the rank-k truncated SVD of m. k must already be
// clamped.
func Decompose(m mat.Matrix, k int) (*Factors, error) {
	rows, cols := m.Dims()

	var svd mat.SVD
	if ok := svd.Factorize(m, mat.SVDThin); !ok {
		return nil, errNoConvergence
	}

	values := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	users := mat.NewDense(rows, k, nil)
	items := mat.NewDense(cols, k, nil)
	for j := 0; j < k; j++ {
		for i := 0; i < rows; i++ {
			users.Set(i, j, u.At(i, j)*values[j])
		}
		for i := 0; i < cols; i++ {
			items.Set(i, j, v.At(i, j))
		}
	}
	return &Factors{Users: users, Items: items, Rank: k}, nil
}

// factorsPayload is the cached form of Factors.
type factorsPayload struct {
	Rows  int       `json:"rows"`
	Cols  int       `json:"cols"`
	Rank  int       `json:"rank"`
	Users []float64 `json:"users"`
	Items []float64 `json:"items"`
}

func (p *factorsPayload) fits(rows, cols, k int) bool {
	return p.Rows == rows && p.Cols == cols && p.Rank == k &&
		len(p.Users) == rows*k && len(p.Items) == cols*k
}

// LatentModel computes factors through the cache.
type LatentModel struct {
	store  cache.Store
	ttl    time.Duration
	logger zerolog.Logger
}

// NewLatentModel creates a LatentModel. A nil store disables memoization.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewLatentModel(store cache.Store, ttl time.Duration, logger zerolog.Logger) *LatentModel {
	if store == nil {
		store = cache.NopStore{}
	}
	return &LatentModel{
		store:  store,
		ttl:    ttl,
		logger: logger.With().Str("component", "latent").Logger(),
	}
}

// Factors clamps k, then returns cached or freshly computed factors of m.
// A nil m or a non-positive clamped rank fails with recommend.ErrInvalidRank.
// A numerical failure is logged and yields zero factors.
func (lm *LatentModel) Factors(ctx context.Context, m *mat.Dense, k int) (*Factors, error) {
	var rows, cols int
	if m != nil {
		rows, cols = m.Dims()
	}
	k, err := ClampRank(k, rows, cols)
	if err != nil {
		return nil, err
	}

	key := recommend.SVDFactorsKey(rows, cols)
	var cached factorsPayload
	hit, err := cache.GetJSON(ctx, lm.store, key, &cached)
	switch {
	case err != nil:
		lm.logger.Warn().Err(err).Str("key", key).Msg("cache read failed, factorizing directly")
	case hit && cached.fits(rows, cols, k):
		return &Factors{
			Users: mat.NewDense(rows, k, cached.Users),
			Items: mat.NewDense(cols, k, cached.Items),
			Rank:  k,
		}, nil
	case hit:
		lm.logger.Warn().Str("key", key).Int("rank", k).Msg("cached factors have incompatible shape, ignoring")
	}

	f, err := Decompose(m, k)
	if err != nil {
		lm.logger.Error().Err(err).Int("rows", rows).Int("cols", cols).Int("rank", k).
			Msg("factorization failed, using zero factors")
		return ZeroFactors(rows, cols, k), nil
	}

	payload := factorsPayload{
		Rows:  rows,
		Cols:  cols,
		Rank:  k,
		Users: f.Users.RawMatrix().Data,
		Items: f.Items.RawMatrix().Data,
	}
	if err := cache.SetJSON(ctx, lm.store, key, payload, lm.ttl); err != nil {
		lm.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return f, nil
}
