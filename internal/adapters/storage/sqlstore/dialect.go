package sqlstore

import (
	"regexp"
	"strconv"
	"strings"
)

// Dialect cubre lo poco que cambia entre Postgres y SQLite.
// Las queries se escriben con $n y Rebind las adapta.
type Dialect struct {
	Name string

	// Rebind reescribe los placeholders $n al formato del motor.
	Rebind func(query string) string

	// JSONArrayContains devuelve una condición "la columna (array JSON de strings) contiene el placeholder".
	JSONArrayContains func(column, placeholder string) string
}

var dollarParam = regexp.MustCompile(`\$(\d+)`)

var Postgres = Dialect{
	Name:   "postgres",
	Rebind: func(q string) string { return q },
	JSONArrayContains: func(column, placeholder string) string {
		return column + " @> jsonb_build_array(" + placeholder + "::text)"
	},
}

// SQLite usa ?NNN, que también es posicional.
var SQLite = Dialect{
	Name: "sqlite",
	Rebind: func(q string) string {
		return dollarParam.ReplaceAllString(q, "?$1")
	},
	JSONArrayContains: func(column, placeholder string) string {
		return "EXISTS (SELECT 1 FROM json_each(" + column + ") WHERE json_each.value = " + placeholder + ")"
	},
}

// placeholders arma "$from, $from+1, ..." para n valores.
func placeholders(from, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "$" + strconv.Itoa(from+i)
	}
	return strings.Join(parts, ", ")
}
