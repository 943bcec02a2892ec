package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaStatements(t *testing.T) {
	t.Parallel()

	t.Run("global_tables", func(t *testing.T) {
		t.Parallel()

		require.Len(t, globalTableDDL, 7, "tenant registry plus six master data tables")
		for _, stmt := range globalTableDDL {
			assert.Contains(t, stmt, "IF NOT EXISTS", "startup re-runs the DDL")
		}
		assert.Contains(t, globalTableDDL[0], "tenant_id VARCHAR(128) UNIQUE NOT NULL",
			"the unique constraint is the backstop against duplicate provisioning")
		assert.Contains(t, globalTableDDL[0], "status VARCHAR(16) NOT NULL DEFAULT 'pending'")
	})

	t.Run("tenant_tables", func(t *testing.T) {
		t.Parallel()

		require.Len(t, tenantTableDDL, 5)
		for _, stmt := range tenantTableDDL {
			assert.Contains(t, stmt, "IF NOT EXISTS")
		}

		// Referenced tables must be created before their dependents within the
		// single transaction ApplyTenantSchema runs.
		roleIdx, userIdx, rpIdx := -1, -1, -1
		for i, stmt := range tenantTableDDL {
			switch {
			case strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS role ("):
				roleIdx = i
			case strings.Contains(stmt, `"user"`):
				userIdx = i
			case strings.Contains(stmt, "role_permission"):
				rpIdx = i
			}
		}
		require.GreaterOrEqual(t, roleIdx, 0)
		assert.Less(t, roleIdx, userIdx, "user references role")
		assert.Less(t, roleIdx, rpIdx, "role_permission references role")
	})
}
