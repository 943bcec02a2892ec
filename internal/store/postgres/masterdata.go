package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flowmasterhq/flowmaster/internal/domain"
)

// masterRepo implements domain.MasterDataRepository[T] for one master-data
// table. Reads go through pgx struct mapping; updates are explicit per-type
// SQL so the mutable column set is visible and type-checked (the natural key
// and creation audit fields are never updated).
type masterRepo[T any] struct {
	pool    *pgxpool.Pool
	table   string
	nameCol string
	cols    string
	update  func(ctx context.Context, pool *pgxpool.Pool, name string, row *T, actor *string) (int64, error)
}

func (r *masterRepo[T]) List(ctx context.Context) ([]*T, error) {
	rows, err := r.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s`, r.cols, r.table, r.nameCol),
	)
	if err != nil {
		return nil, fmt.Errorf("%sRepo.List: %w", r.table, err)
	}

	out, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("%sRepo.List: collect: %w", r.table, err)
	}

	return out, nil
}

func (r *masterRepo[T]) GetByName(ctx context.Context, name string) (*T, error) {
	rows, err := r.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, r.cols, r.table, r.nameCol),
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("%sRepo.GetByName: %w", r.table, err)
	}

	row, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%sRepo.GetByName: %w", r.table, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%sRepo.GetByName: %w", r.table, err)
	}

	return row, nil
}

func (r *masterRepo[T]) Update(ctx context.Context, name string, row *T, actor string) (*T, error) {
	affected, err := r.update(ctx, r.pool, name, row, nilIfEmpty(actor))
	if err != nil {
		return nil, fmt.Errorf("%sRepo.Update: %w", r.table, err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%sRepo.Update: %w", r.table, domain.ErrNotFound)
	}

	return r.GetByName(ctx, name)
}

func (r *masterRepo[T]) Delete(ctx context.Context, name string) error {
	tag, err := r.pool.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, r.table, r.nameCol),
		name,
	)
	if err != nil {
		return fmt.Errorf("%sRepo.Delete: %w", r.table, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%sRepo.Delete: %w", r.table, domain.ErrNotFound)
	}

	return nil
}

func newPipeRepo(pool *pgxpool.Pool) *masterRepo[domain.Pipe] {
	return &masterRepo[domain.Pipe]{
		pool:    pool,
		table:   "pipe",
		nameCol: "material",
		cols: `id, material, schedule_or_class, internal_roughness_in_inch, size,
			nominal_size_in_imperial_value, nominal_size_in_imperial_unit,
			nominal_size_in_metric_value, nominal_size_in_metric_unit,
			wall_thickness_in_inch, outside_diameter_in_inch, weight_in_lb_or_ft,
			created_at, created_by, modified_at, modified_by`,
		update: func(ctx context.Context, pool *pgxpool.Pool, name string, row *domain.Pipe, actor *string) (int64, error) {
			tag, err := pool.Exec(ctx,
				`UPDATE pipe SET schedule_or_class = $1, internal_roughness_in_inch = $2, size = $3,
					nominal_size_in_imperial_value = $4, nominal_size_in_imperial_unit = $5,
					nominal_size_in_metric_value = $6, nominal_size_in_metric_unit = $7,
					wall_thickness_in_inch = $8, outside_diameter_in_inch = $9, weight_in_lb_or_ft = $10,
					modified_at = now(), modified_by = $11
				 WHERE material = $12`,
				row.ScheduleOrClass, row.InternalRoughnessInInch, row.Size,
				row.NominalSizeInImperialValue, row.NominalSizeInImperialUnit,
				row.NominalSizeInMetricValue, row.NominalSizeInMetricUnit,
				row.WallThicknessInInch, row.OutsideDiameterInInch, row.WeightInLbOrFt,
				actor, name,
			)
			if err != nil {
				return 0, err
			}
			return tag.RowsAffected(), nil
		},
	}
}

func newFittingRepo(pool *pgxpool.Pool) *masterRepo[domain.Fitting] {
	return &masterRepo[domain.Fitting]{
		pool:    pool,
		table:   "fitting",
		nameCol: "type",
		cols: `id, type, size, symbol, pipe_size_in_metric_value, pipe_size_in_metric_unit,
			pipe_size_in_imperial_value, pipe_size_in_imperial_unit, description, k_factor,
			created_at, created_by, modified_at, modified_by`,
		update: func(ctx context.Context, pool *pgxpool.Pool, name string, row *domain.Fitting, actor *string) (int64, error) {
			tag, err := pool.Exec(ctx,
				`UPDATE fitting SET size = $1, symbol = $2, pipe_size_in_metric_value = $3,
					pipe_size_in_metric_unit = $4, pipe_size_in_imperial_value = $5,
					pipe_size_in_imperial_unit = $6, description = $7, k_factor = $8,
					modified_at = now(), modified_by = $9
				 WHERE type = $10`,
				row.Size, row.Symbol, row.PipeSizeInMetricValue,
				row.PipeSizeInMetricUnit, row.PipeSizeInImperialValue,
				row.PipeSizeInImperialUnit, row.Description, row.KFactor,
				actor, name,
			)
			if err != nil {
				return 0, err
			}
			return tag.RowsAffected(), nil
		},
	}
}

func newGasRepo(pool *pgxpool.Pool) *masterRepo[domain.Gas] {
	return &masterRepo[domain.Gas]{
		pool:    pool,
		table:   "gas",
		nameCol: "name",
		cols: `id, name, formula, temperature_in_k, pressure_in_bar_g,
			density_in_kg_or_meter_cube, viscosity_centipoise, specific_heat_ratio, state,
			created_at, created_by, modified_at, modified_by`,
		update: func(ctx context.Context, pool *pgxpool.Pool, name string, row *domain.Gas, actor *string) (int64, error) {
			tag, err := pool.Exec(ctx,
				`UPDATE gas SET formula = $1, temperature_in_k = $2, pressure_in_bar_g = $3,
					density_in_kg_or_meter_cube = $4, viscosity_centipoise = $5,
					specific_heat_ratio = $6, state = $7,
					modified_at = now(), modified_by = $8
				 WHERE name = $9`,
				row.Formula, row.TemperatureInK, row.PressureInBarG,
				row.DensityInKgOrMeterCube, row.ViscosityCentipoise,
				row.SpecificHeatRatio, row.State,
				actor, name,
			)
			if err != nil {
				return 0, err
			}
			return tag.RowsAffected(), nil
		},
	}
}

func newLiquidRepo(pool *pgxpool.Pool) *masterRepo[domain.Liquid] {
	return &masterRepo[domain.Liquid]{
		pool:    pool,
		table:   "liquid",
		nameCol: "name",
		cols: `id, name, formula, temperature_in_k, pressure_in_bar_g,
			density_in_kg_or_meter_cube, viscosity_centipoise, vapour_pressure_in_kpa_absolute, state,
			created_at, created_by, modified_at, modified_by`,
		update: func(ctx context.Context, pool *pgxpool.Pool, name string, row *domain.Liquid, actor *string) (int64, error) {
			tag, err := pool.Exec(ctx,
				`UPDATE liquid SET formula = $1, temperature_in_k = $2, pressure_in_bar_g = $3,
					density_in_kg_or_meter_cube = $4, viscosity_centipoise = $5,
					vapour_pressure_in_kpa_absolute = $6, state = $7,
					modified_at = now(), modified_by = $8
				 WHERE name = $9`,
				row.Formula, row.TemperatureInK, row.PressureInBarG,
				row.DensityInKgOrMeterCube, row.ViscosityCentipoise,
				row.VapourPressureInKpaAbsolute, row.State,
				actor, name,
			)
			if err != nil {
				return 0, err
			}
			return tag.RowsAffected(), nil
		},
	}
}

func newUnitRepo(pool *pgxpool.Pool) *masterRepo[domain.Unit] {
	return &masterRepo[domain.Unit]{
		pool:    pool,
		table:   "unit",
		nameCol: "name",
		cols:    `id, name, symbol, measurement_type, created_at, created_by, modified_at, modified_by`,
		update: func(ctx context.Context, pool *pgxpool.Pool, name string, row *domain.Unit, actor *string) (int64, error) {
			tag, err := pool.Exec(ctx,
				`UPDATE unit SET symbol = $1, measurement_type = $2,
					modified_at = now(), modified_by = $3
				 WHERE name = $4`,
				row.Symbol, row.MeasurementType, actor, name,
			)
			if err != nil {
				return 0, err
			}
			return tag.RowsAffected(), nil
		},
	}
}

func newComponentRepo(pool *pgxpool.Pool) *masterRepo[domain.Component] {
	return &masterRepo[domain.Component]{
		pool:    pool,
		table:   "component",
		nameCol: "name",
		cols:    `id, name, capacity_in_liters, material, description, created_at, created_by, modified_at, modified_by`,
		update: func(ctx context.Context, pool *pgxpool.Pool, name string, row *domain.Component, actor *string) (int64, error) {
			tag, err := pool.Exec(ctx,
				`UPDATE component SET capacity_in_liters = $1, material = $2, description = $3,
					modified_at = now(), modified_by = $4
				 WHERE name = $5`,
				row.CapacityInLiters, row.Material, row.Description, actor, name,
			)
			if err != nil {
				return 0, err
			}
			return tag.RowsAffected(), nil
		},
	}
}
