package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/matchvault/fiveaside/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players []player.Player
	index   map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	sorted := make([]player.Player, len(players))
	copy(sorted, players)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	index := make(map[string]player.Player, len(sorted))
	for _, p := range sorted {
		index[p.ID] = p
	}
	return &PlayerRepository{players: sorted, index: index}
}

func (r *PlayerRepository) ListAll(context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	out = append(out, r.players...)
	return out, nil
}

func (r *PlayerRepository) ListCurrent(context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []player.Player
	for _, p := range r.players {
		if p.IsCurrent() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PlayerRepository) ListCurrentPage(_ context.Context, afterID string, limit int) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []player.Player
	for _, p := range r.players {
		if !p.IsCurrent() || p.ID <= afterID {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.index[playerID]
	return p, ok, nil
}
