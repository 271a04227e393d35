package store

import _ "embed"

// Schema creates the ifsw_schema tables read by PostgresStore.
//
//go:embed schema.sql
var Schema string
