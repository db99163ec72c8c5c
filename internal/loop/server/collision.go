package server

import (
	"errors"

	"github.com/tomz197/eggcatch/internal/loop/config"
	"github.com/tomz197/eggcatch/internal/object"
	"github.com/tomz197/eggcatch/internal/physics"
)

// eggBox returns the collision box of an egg.
func eggBox(e object.Egg) physics.Box {
	return physics.Box{X: e.X, Y: e.Y, Width: config.EggWidth, Height: config.EggHeight}
}

// bucketBox returns the collision box of the bucket centred at (x, y).
func bucketBox(x, y float64) physics.Box {
	return physics.Box{X: x, Y: y, Width: config.BucketWidth, Height: config.BucketHeight}
}

// collectCatches appends the IDs of eggs overlapping the bucket to dst.
// Uses the caller's slice to avoid allocations.
func collectCatches(items []object.Egg, bucket physics.Box, dst []uint64) []uint64 {
	dst = dst[:0]
	for _, e := range items {
		if physics.BoxesOverlap(eggBox(e), bucket) {
			dst = append(dst, e.ID)
		}
	}
	return dst
}

// resolveCatches runs the catch pass for one client and reports each contact
// to its session. Must be called from the server goroutine.
func (s *Server) resolveCatches(h *ClientHandle) {
	if h.session == nil || h.session.GameOver() {
		return
	}
	snap := h.session.Snapshot()
	h.catchBuf = collectCatches(snap.Items, bucketBox(snap.CatcherX, s.layout.CatcherY), h.catchBuf)

	for _, id := range h.catchBuf {
		if err := h.session.OnCatch(id); err != nil {
			if errors.Is(err, object.ErrNotFound) {
				s.logger.Debug("stale catch dropped", "client", h.ID, "egg", id)
				continue
			}
			s.logger.Error("catch failed", "client", h.ID, "egg", id, "err", err)
		}
	}
}
