// This file registers the SingleStore dialect with the dialect registry.
// Import this package with a blank identifier to register the dialect:
//
//	import _ "github.com/jimvekemans/dbt-academy/pkg/dialects/singlestore"
package singlestore

import (
	"github.com/jimvekemans/dbt-academy/pkg/dialect"

	// MySQL wire-protocol driver used by this dialect.
	_ "github.com/go-sql-driver/mysql"
)

func init() {
	dialect.Register("singlestore", Dialect{})
}
