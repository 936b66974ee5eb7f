// Package mysql implements the store interfaces over database/sql with the
// MySQL driver.
package mysql

import (
	"database/sql"
	"errors"

	driver "github.com/go-sql-driver/mysql"
)

// Stores bundles the repository implementations sharing one pool handle.
type Stores struct {
	Users       *UserStore
	Teams       *TeamStore
	Memberships *MembershipStore
	Tasks       *TaskStore
}

func NewStores(db *sql.DB) *Stores {
	return &Stores{
		Users:       NewUserStore(db),
		Teams:       NewTeamStore(db),
		Memberships: NewMembershipStore(db),
		Tasks:       NewTaskStore(db),
	}
}

// isDuplicate reports whether err is a MySQL unique-key violation.
func isDuplicate(err error) bool {
	var me *driver.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
