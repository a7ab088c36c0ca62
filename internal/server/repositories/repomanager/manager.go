package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/inkwell/internal/dbx"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/posts"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Posts(db dbx.DBTX) posts.Repository
}
