package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// ErrorDump is the log-friendly view of an error chain.
type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	PGCode    string `json:"pg_code,omitempty"`
	PGTable   string `json:"pg_table,omitempty"`
	PGColumn  string `json:"pg_column,omitempty"`
	PGDetail  string `json:"pg_detail,omitempty"`
	PGMessage string `json:"pg_message,omitempty"`
}

// Fields flattens the dump into logger fields, skipping empty Postgres values.
func (d ErrorDump) Fields() map[string]any {
	fields := map[string]any{
		"error":       d.TopMessage,
		"error_chain": d.Chain,
	}
	if d.Code != "" {
		fields["error_code"] = d.Code
	}
	for key, value := range map[string]string{
		"pg_code":    d.PGCode,
		"pg_table":   d.PGTable,
		"pg_column":  d.PGColumn,
		"pg_detail":  d.PGDetail,
		"pg_message": d.PGMessage,
	} {
		if value != "" {
			fields[key] = value
		}
	}
	return fields
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{TopMessage: err.Error()}
	if te := As(err); te != nil {
		d.Code = te.Code()
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		d.PGCode = pgxErr.Code
		d.PGTable = pgxErr.TableName
		d.PGColumn = pgxErr.ColumnName
		d.PGDetail = pgxErr.Detail
		d.PGMessage = pgxErr.Message
		return d
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		d.PGCode = string(pqErr.Code)
		d.PGTable = pqErr.Table
		d.PGColumn = pqErr.Column
		d.PGDetail = pqErr.Detail
		d.PGMessage = pqErr.Message
	}
	return d
}
