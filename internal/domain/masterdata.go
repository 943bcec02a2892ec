package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Master data lives in the global database and is shared by every tenant.
// Numeric and descriptive columns are nullable in the schema, hence the
// pointer fields. Audit actors are free-form strings here (seed scripts and
// humans), unlike the tenant tables where they are user UUIDs.

type Pipe struct {
	ID                          uuid.UUID  `json:"id" db:"id"`
	Material                    string     `json:"material" db:"material"`
	ScheduleOrClass             *string    `json:"schedule_or_class,omitempty" db:"schedule_or_class"`
	InternalRoughnessInInch     *float64   `json:"internal_roughness_in_inch,omitempty" db:"internal_roughness_in_inch"`
	Size                        *float64   `json:"size,omitempty" db:"size"`
	NominalSizeInImperialValue  *float64   `json:"nominal_size_in_imperial_value,omitempty" db:"nominal_size_in_imperial_value"`
	NominalSizeInImperialUnit   *string    `json:"nominal_size_in_imperial_unit,omitempty" db:"nominal_size_in_imperial_unit"`
	NominalSizeInMetricValue    *float64   `json:"nominal_size_in_metric_value,omitempty" db:"nominal_size_in_metric_value"`
	NominalSizeInMetricUnit     *string    `json:"nominal_size_in_metric_unit,omitempty" db:"nominal_size_in_metric_unit"`
	WallThicknessInInch         *float64   `json:"wall_thickness_in_inch,omitempty" db:"wall_thickness_in_inch"`
	OutsideDiameterInInch       *float64   `json:"outside_diameter_in_inch,omitempty" db:"outside_diameter_in_inch"`
	WeightInLbOrFt              *float64   `json:"weight_in_lb_or_ft,omitempty" db:"weight_in_lb_or_ft"`
	CreatedAt                   time.Time  `json:"created_at" db:"created_at"`
	CreatedBy                   *string    `json:"created_by,omitempty" db:"created_by"`
	ModifiedAt                  *time.Time `json:"modified_at,omitempty" db:"modified_at"`
	ModifiedBy                  *string    `json:"modified_by,omitempty" db:"modified_by"`
}

type Fitting struct {
	ID                      uuid.UUID  `json:"id" db:"id"`
	Type                    string     `json:"type" db:"type"`
	Size                    *int32     `json:"size,omitempty" db:"size"`
	Symbol                  *int32     `json:"symbol,omitempty" db:"symbol"`
	PipeSizeInMetricValue   *float64   `json:"pipe_size_in_metric_value,omitempty" db:"pipe_size_in_metric_value"`
	PipeSizeInMetricUnit    *string    `json:"pipe_size_in_metric_unit,omitempty" db:"pipe_size_in_metric_unit"`
	PipeSizeInImperialValue *float64   `json:"pipe_size_in_imperial_value,omitempty" db:"pipe_size_in_imperial_value"`
	PipeSizeInImperialUnit  *string    `json:"pipe_size_in_imperial_unit,omitempty" db:"pipe_size_in_imperial_unit"`
	Description             *string    `json:"description,omitempty" db:"description"`
	KFactor                 *float64   `json:"k_factor,omitempty" db:"k_factor"`
	CreatedAt               time.Time  `json:"created_at" db:"created_at"`
	CreatedBy               *string    `json:"created_by,omitempty" db:"created_by"`
	ModifiedAt              *time.Time `json:"modified_at,omitempty" db:"modified_at"`
	ModifiedBy              *string    `json:"modified_by,omitempty" db:"modified_by"`
}

type Gas struct {
	ID                     uuid.UUID  `json:"id" db:"id"`
	Name                   string     `json:"name" db:"name"`
	Formula                *string    `json:"formula,omitempty" db:"formula"`
	TemperatureInK         *float64   `json:"temperature_in_k,omitempty" db:"temperature_in_k"`
	PressureInBarG         *float64   `json:"pressure_in_bar_g,omitempty" db:"pressure_in_bar_g"`
	DensityInKgOrMeterCube *float64   `json:"density_in_kg_or_meter_cube,omitempty" db:"density_in_kg_or_meter_cube"`
	ViscosityCentipoise    *float64   `json:"viscosity_centipoise,omitempty" db:"viscosity_centipoise"`
	SpecificHeatRatio      *float64   `json:"specific_heat_ratio,omitempty" db:"specific_heat_ratio"`
	State                  *string    `json:"state,omitempty" db:"state"`
	CreatedAt              time.Time  `json:"created_at" db:"created_at"`
	CreatedBy              *string    `json:"created_by,omitempty" db:"created_by"`
	ModifiedAt             *time.Time `json:"modified_at,omitempty" db:"modified_at"`
	ModifiedBy             *string    `json:"modified_by,omitempty" db:"modified_by"`
}

type Liquid struct {
	ID                          uuid.UUID  `json:"id" db:"id"`
	Name                        string     `json:"name" db:"name"`
	Formula                     *string    `json:"formula,omitempty" db:"formula"`
	TemperatureInK              *float64   `json:"temperature_in_k,omitempty" db:"temperature_in_k"`
	PressureInBarG              *float64   `json:"pressure_in_bar_g,omitempty" db:"pressure_in_bar_g"`
	DensityInKgOrMeterCube      *float64   `json:"density_in_kg_or_meter_cube,omitempty" db:"density_in_kg_or_meter_cube"`
	ViscosityCentipoise         *float64   `json:"viscosity_centipoise,omitempty" db:"viscosity_centipoise"`
	VapourPressureInKpaAbsolute *float64   `json:"vapour_pressure_in_kpa_absolute,omitempty" db:"vapour_pressure_in_kpa_absolute"`
	State                       *string    `json:"state,omitempty" db:"state"`
	CreatedAt                   time.Time  `json:"created_at" db:"created_at"`
	CreatedBy                   *string    `json:"created_by,omitempty" db:"created_by"`
	ModifiedAt                  *time.Time `json:"modified_at,omitempty" db:"modified_at"`
	ModifiedBy                  *string    `json:"modified_by,omitempty" db:"modified_by"`
}

type Unit struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	Name            string     `json:"name" db:"name"`
	Symbol          *string    `json:"symbol,omitempty" db:"symbol"`
	MeasurementType *string    `json:"measurement_type,omitempty" db:"measurement_type"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	CreatedBy       *string    `json:"created_by,omitempty" db:"created_by"`
	ModifiedAt      *time.Time `json:"modified_at,omitempty" db:"modified_at"`
	ModifiedBy      *string    `json:"modified_by,omitempty" db:"modified_by"`
}

type Component struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	Name             string     `json:"name" db:"name"`
	CapacityInLiters *float64   `json:"capacity_in_liters,omitempty" db:"capacity_in_liters"`
	Material         *string    `json:"material,omitempty" db:"material"`
	Description      *string    `json:"description,omitempty" db:"description"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	CreatedBy        *string    `json:"created_by,omitempty" db:"created_by"`
	ModifiedAt       *time.Time `json:"modified_at,omitempty" db:"modified_at"`
	ModifiedBy       *string    `json:"modified_by,omitempty" db:"modified_by"`
}

// MasterDataRepository is the per-type access contract. Rows are addressed by
// their natural key: name for most types, material for pipes and type for
// fittings. Update mutates the data columns explicitly and stamps
// modified_at/modified_by; id and creation audit fields never change.
type MasterDataRepository[T any] interface {
	List(ctx context.Context) ([]*T, error)
	GetByName(ctx context.Context, name string) (*T, error)
	Update(ctx context.Context, name string, row *T, actor string) (*T, error)
	Delete(ctx context.Context, name string) error
}
