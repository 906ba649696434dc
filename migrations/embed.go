package migrations

import "embed"

// FS SQL-миграции схемы, встроенные в бинарь
//
//go:embed *.sql
var FS embed.FS
