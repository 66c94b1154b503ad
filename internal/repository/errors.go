package repository

import (
	"errors"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// ErrDuplicate は一意制約違反を表す。
// 同一メールアドレスの再登録や同一タイトルの記事の同時投稿の競合は
// データベースの一意制約が最終的な調停者となり、敗者にはこのエラーが返る。
var ErrDuplicate = errors.New("unique constraint violation")

// isUniqueViolation はドライバー固有のエラーから一意制約違反を判定する。
// PostgreSQL（lib/pq）とSQLite（mattn/go-sqlite3）の両方に対応する。
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// 23505 = unique_violation
		return pqErr.Code == "23505"
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
