package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

var (
	_ repository.SettingRepository       = (*SettingRepo)(nil)
	_ repository.PasswordResetRepository = (*PasswordResetRepo)(nil)
)

// SettingRepo configuración en memoria.
type SettingRepo struct{ s *Store }

func (r *SettingRepo) List(_ context.Context) ([]*entity.Setting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := r.s.settings.all(nil)
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *SettingRepo) Get(_ context.Context, key string) (*entity.Setting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.settings.get(key), nil
}

func (r *SettingRepo) Upsert(_ context.Context, st *entity.Setting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *st
	r.s.settings.rows[st.Key] = &cp
	return nil
}

// PasswordResetRepo tokens de restablecimiento en memoria.
type PasswordResetRepo struct{ s *Store }

func (r *PasswordResetRepo) Create(_ context.Context, pr *entity.PasswordReset) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.resets.find(func(o *entity.PasswordReset) bool { return o.TokenHash == pr.TokenHash }) != nil {
		return domain.ErrDuplicate
	}
	return r.s.resets.insert(pr)
}

func (r *PasswordResetRepo) GetByTokenHash(_ context.Context, hash string) (*entity.PasswordReset, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.resets.find(func(pr *entity.PasswordReset) bool { return pr.TokenHash == hash }), nil
}

func (r *PasswordResetRepo) MarkUsed(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	pr := r.s.resets.get(id)
	if pr == nil || !pr.Usable(at) {
		return domain.ErrTokenExpired
	}
	r.s.resets.update(id, func(pr *entity.PasswordReset) { pr.UsedAt = &at })
	return nil
}
