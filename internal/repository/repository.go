package repository

import (
	"errors"

	"groupie/internal/database"
	"groupie/internal/domain"

	"github.com/sirupsen/logrus"
)

func loggerOrDefault(l logrus.FieldLogger) logrus.FieldLogger {
	if l == nil {
		return logrus.StandardLogger()
	}
	return l
}

// dbFailure logs a driver error with its context and wraps it as ErrDatabase.
func dbFailure(log logrus.FieldLogger, op string, err error, fields logrus.Fields) error {
	log.WithFields(fields).WithField("op", op).WithError(err).Error("database operation failed")
	return domain.Database(op, err)
}

func isNoRows(err error) bool {
	return errors.Is(err, database.ErrNoRows)
}

// int64s keeps nil slices nil so COALESCE leaves the column untouched, while
// an explicit empty slice clears it.
func int64s(v []int64) any {
	if v == nil {
		return nil
	}
	return v
}

func emptyIfNil(v []int64) []int64 {
	if v == nil {
		return []int64{}
	}
	return v
}
