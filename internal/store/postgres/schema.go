package postgres

// DDL is idempotent (CREATE TABLE IF NOT EXISTS) so the startup path and the
// tenant provisioning/migration path can re-run it safely. Tenant databases
// and the provisioner share tenantTableDDL as the single source of the
// tenant schema; there is no second definition to drift from.

var globalTableDDL = []string{
	`CREATE TABLE IF NOT EXISTS tenant (
		id UUID PRIMARY KEY,
		tenant_id VARCHAR(128) UNIQUE NOT NULL,
		company_name VARCHAR(128),
		logo_url VARCHAR(256),
		status VARCHAR(16) NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		created_by UUID,
		modified_at TIMESTAMPTZ,
		modified_by UUID
	)`,
	`CREATE TABLE IF NOT EXISTS pipe (
		id UUID PRIMARY KEY,
		material VARCHAR(64) NOT NULL,
		schedule_or_class VARCHAR(64),
		internal_roughness_in_inch NUMERIC(20, 10),
		size NUMERIC(10),
		nominal_size_in_imperial_value NUMERIC(30, 20),
		nominal_size_in_imperial_unit VARCHAR(4),
		nominal_size_in_metric_value NUMERIC(30, 20),
		nominal_size_in_metric_unit VARCHAR(2),
		wall_thickness_in_inch NUMERIC(20, 10),
		outside_diameter_in_inch NUMERIC(20, 10),
		weight_in_lb_or_ft NUMERIC(20, 10),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		created_by VARCHAR(64),
		modified_at TIMESTAMPTZ,
		modified_by VARCHAR(64)
	)`,
	`CREATE TABLE IF NOT EXISTS fitting (
		id UUID PRIMARY KEY,
		type VARCHAR(64) NOT NULL,
		size INTEGER,
		symbol INTEGER,
		pipe_size_in_metric_value NUMERIC(30, 20),
		pipe_size_in_metric_unit VARCHAR(2),
		pipe_size_in_imperial_value NUMERIC(30, 20),
		pipe_size_in_imperial_unit VARCHAR(4),
		description VARCHAR(256),
		k_factor NUMERIC(10, 5),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		created_by VARCHAR(64),
		modified_at TIMESTAMPTZ,
		modified_by VARCHAR(64)
	)`,
	`CREATE TABLE IF NOT EXISTS gas (
		id UUID PRIMARY KEY,
		name VARCHAR(64) NOT NULL,
		formula VARCHAR(64),
		temperature_in_k NUMERIC(10, 5),
		pressure_in_bar_g NUMERIC(10, 5),
		density_in_kg_or_meter_cube NUMERIC(10, 5),
		viscosity_centipoise NUMERIC(20, 10),
		specific_heat_ratio NUMERIC(20, 10),
		state VARCHAR(3),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		created_by VARCHAR(64),
		modified_at TIMESTAMPTZ,
		modified_by VARCHAR(64)
	)`,
	`CREATE TABLE IF NOT EXISTS liquid (
		id UUID PRIMARY KEY,
		name VARCHAR(64) NOT NULL,
		formula VARCHAR(64),
		temperature_in_k NUMERIC(10, 5),
		pressure_in_bar_g NUMERIC(10, 5),
		density_in_kg_or_meter_cube NUMERIC(20, 10),
		viscosity_centipoise NUMERIC(20, 10),
		vapour_pressure_in_kpa_absolute NUMERIC(20, 10),
		state VARCHAR(6),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		created_by VARCHAR(64),
		modified_at TIMESTAMPTZ,
		modified_by VARCHAR(64)
	)`,
	`CREATE TABLE IF NOT EXISTS unit (
		id UUID PRIMARY KEY,
		name VARCHAR(64) NOT NULL,
		symbol VARCHAR(64),
		measurement_type VARCHAR(64),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		created_by VARCHAR(64),
		modified_at TIMESTAMPTZ,
		modified_by VARCHAR(64)
	)`,
	`CREATE TABLE IF NOT EXISTS component (
		id UUID PRIMARY KEY,
		name VARCHAR(64) NOT NULL,
		capacity_in_liters NUMERIC(30, 20),
		material VARCHAR(64),
		description VARCHAR(256),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		created_by VARCHAR(64),
		modified_at TIMESTAMPTZ,
		modified_by VARCHAR(64)
	)`,
}

var tenantTableDDL = []string{
	`CREATE TABLE IF NOT EXISTS role (
		id UUID PRIMARY KEY,
		name VARCHAR(64) UNIQUE NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		created_by UUID,
		modified_at TIMESTAMPTZ,
		modified_by UUID
	)`,
	`CREATE TABLE IF NOT EXISTS permission (
		id UUID PRIMARY KEY,
		code VARCHAR(64) UNIQUE NOT NULL,
		description VARCHAR(256),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		created_by UUID,
		modified_at TIMESTAMPTZ,
		modified_by UUID
	)`,
	`CREATE TABLE IF NOT EXISTS role_permission (
		id UUID PRIMARY KEY,
		role_id UUID REFERENCES role(id),
		permission_id UUID REFERENCES permission(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		created_by UUID,
		modified_at TIMESTAMPTZ,
		modified_by UUID,
		UNIQUE (role_id, permission_id)
	)`,
	`CREATE TABLE IF NOT EXISTS "user" (
		id UUID PRIMARY KEY,
		name VARCHAR(64),
		email VARCHAR(64) UNIQUE,
		role_id UUID REFERENCES role(id),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		created_by UUID,
		modified_at TIMESTAMPTZ,
		modified_by UUID
	)`,
	`CREATE TABLE IF NOT EXISTS network_flow (
		id UUID PRIMARY KEY,
		name VARCHAR(64) NOT NULL,
		flow_url VARCHAR(256),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		created_by UUID,
		modified_at TIMESTAMPTZ,
		modified_by UUID
	)`,
}
