package repositories

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers this package reacts to.
const (
	mysqlErrDupEntry        = 1062
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
)

func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrDupEntry
}

// isContention reports deadlocks and lock-wait timeouts, both safe to
// retry after the engine rolled the transaction back.
func isContention(err error) bool {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return false
	}
	return me.Number == mysqlErrDeadlock || me.Number == mysqlErrLockWaitTimeout
}
