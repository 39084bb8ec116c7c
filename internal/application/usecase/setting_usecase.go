package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/application/ports"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

const settingsCacheTTL = 5 * time.Minute

// SettingUseCase configuración global del sitio. Es el único punto de la aplicación
// que conoce el modo mantenimiento y el tamaño de página por defecto.
type SettingUseCase struct {
	repo         repository.SettingRepository
	cache        ports.SettingsCache // opcional
	defaultLimit int
	maxLimit     int
}

// NewSettingUseCase construye el caso de uso. cache puede ser nil.
func NewSettingUseCase(repo repository.SettingRepository, cache ports.SettingsCache, defaultLimit, maxLimit int) *SettingUseCase {
	return &SettingUseCase{repo: repo, cache: cache, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// All devuelve todas las claves conocidas, completando con valores por defecto.
func (uc *SettingUseCase) All(ctx context.Context) (map[string]string, error) {
	if uc.cache != nil {
		if values, ok, err := uc.cache.Get(ctx); err == nil && ok {
			return values, nil
		} else if err != nil {
			log.Warn().Err(err).Msg("leer caché de configuración")
		}
	}
	rows, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar configuración: %w", err)
	}
	values := make(map[string]string, len(entity.DefaultSettings))
	for k, v := range entity.DefaultSettings {
		values[k] = v
	}
	for _, s := range rows {
		values[s.Key] = s.Value
	}
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, values, settingsCacheTTL); err != nil {
			log.Warn().Err(err).Msg("escribir caché de configuración")
		}
	}
	return values, nil
}

// List devuelve la configuración ordenada por clave.
func (uc *SettingUseCase) List(ctx context.Context) ([]dto.SettingResponse, error) {
	rows, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar configuración: %w", err)
	}
	stored := make(map[string]*entity.Setting, len(rows))
	for _, s := range rows {
		stored[s.Key] = s
	}
	out := make([]dto.SettingResponse, 0, len(entity.DefaultSettings))
	for key, def := range entity.DefaultSettings {
		if s, ok := stored[key]; ok {
			out = append(out, toSettingResponse(s))
			continue
		}
		out = append(out, dto.SettingResponse{Key: key, Value: def})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Update valida y guarda una clave; invalida la caché.
func (uc *SettingUseCase) Update(ctx context.Context, key, value string) (*dto.SettingResponse, error) {
	value = strings.TrimSpace(value)
	if err := entity.ValidateSetting(key, value, uc.maxLimit); err != nil {
		return nil, err
	}
	s := &entity.Setting{Key: key, Value: value, UpdatedAt: time.Now()}
	if err := uc.repo.Upsert(ctx, s); err != nil {
		return nil, fmt.Errorf("guardar configuración: %w", err)
	}
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx); err != nil {
			log.Warn().Err(err).Msg("invalidar caché de configuración")
		}
	}
	out := toSettingResponse(s)
	return &out, nil
}

// Value devuelve el valor de key; ante fallo de almacenamiento usa el valor por defecto.
func (uc *SettingUseCase) Value(ctx context.Context, key string) string {
	values, err := uc.All(ctx)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("leer configuración")
		return entity.DefaultSettings[key]
	}
	return values[key]
}

// MaintenanceEnabled informa si el sitio está en mantenimiento.
// Devuelve error solo ante fallos de infraestructura.
func (uc *SettingUseCase) MaintenanceEnabled(ctx context.Context) (bool, error) {
	values, err := uc.All(ctx)
	if err != nil {
		return false, err
	}
	on, _ := strconv.ParseBool(values[entity.SettingMaintenanceMode])
	return on, nil
}

// PageSizeDefault tamaño de página cuando la petición no trae limit.
func (uc *SettingUseCase) PageSizeDefault(ctx context.Context) int {
	n, err := strconv.Atoi(uc.Value(ctx, entity.SettingPageSizeDefault))
	if err != nil || n < 1 || n > uc.maxLimit {
		return uc.defaultLimit
	}
	return n
}

// MaxLimit límite superior de page size.
func (uc *SettingUseCase) MaxLimit() int { return uc.maxLimit }
