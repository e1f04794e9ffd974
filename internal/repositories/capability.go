package repositories

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// The atomic booking-create path is declared unavailable only on these
// exact signatures. Anything else (validation, constraint, connection) is
// a real error and must surface, never trigger a fallback.
var capabilityErrNums = map[uint16]bool{
	1146: true, // ER_NO_SUCH_TABLE
	1295: true, // ER_UNSUPPORTED_PS
	1305: true, // ER_SP_DOES_NOT_EXIST
}

// IsCapabilitySignature reports whether err matches the enumerated
// "operation not found / not supported" shapes.
func IsCapabilitySignature(err error) bool {
	if err == nil {
		return false
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return capabilityErrNums[me.Number]
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "does not exist") || strings.Contains(msg, "doesn't exist")
}
