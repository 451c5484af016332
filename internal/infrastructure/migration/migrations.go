package migration

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

const (
	versionCoreTables    int64 = 20250101000001
	versionContentTables int64 = 20250101000002
)

// goMigrations builds the versioned schema steps. Each step drives the gorm
// migrator through goose's transaction so the version row and the DDL share
// one connection.
func goMigrations(base *gorm.DB) []*goose.Migration {
	return []*goose.Migration{
		goose.NewGoMigration(versionCoreTables,
			&goose.GoFunc{RunTx: createTables(base, CoreModels)},
			&goose.GoFunc{RunTx: dropTables(base, CoreModels)},
		),
		goose.NewGoMigration(versionContentTables,
			&goose.GoFunc{RunTx: createTables(base, ContentModels)},
			&goose.GoFunc{RunTx: dropTables(base, ContentModels)},
		),
	}
}

func createTables(base *gorm.DB, set func() []interface{}) func(context.Context, *sql.Tx) error {
	return func(ctx context.Context, tx *sql.Tx) error {
		return onTx(ctx, base, tx).Migrator().AutoMigrate(set()...)
	}
}

func dropTables(base *gorm.DB, set func() []interface{}) func(context.Context, *sql.Tx) error {
	return func(ctx context.Context, tx *sql.Tx) error {
		models := set()
		// reverse order so dependants go first
		for i, j := 0, len(models)-1; i < j; i, j = i+1, j-1 {
			models[i], models[j] = models[j], models[i]
		}
		return onTx(ctx, base, tx).Migrator().DropTable(models...)
	}
}

// onTx returns a gorm session whose statements run on tx.
func onTx(ctx context.Context, base *gorm.DB, tx *sql.Tx) *gorm.DB {
	session := base.Session(&gorm.Session{NewDB: true, SkipDefaultTransaction: true, Context: ctx})
	session.Statement.ConnPool = tx
	return session
}
